package transport

import (
	"bytes"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

func clone(r *http.Request) *http.Request {
	cloned := r.Clone(r.Context())
	// deep-copy body for idempotent POST replay
	if r.Body != nil && r.Body != http.NoBody {
		buf, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(buf))
		cloned.Body = io.NopCloser(bytes.NewReader(buf))
		cloned.ContentLength = int64(len(buf))
	}
	return cloned
}

func authorize(r *http.Request, token *oauth2.Token) {
	r.Header.Set("Authorization", "Bearer "+token.AccessToken)
}
