package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/geosp/mcp-bridge/client/auth/store"
	"github.com/sirupsen/logrus"
	"github.com/viant/scy/auth/flow"
	"golang.org/x/oauth2"
)

// RoundTripper sends requests with a cached bearer token when one is available.
// When the server answers 401 Unauthorized it obtains a new token (refresh or
// interactive flow) and replays the request once.
type RoundTripper struct {
	config          *oauth2.Config
	store           store.Store
	authFlow        flow.AuthFlow
	authFlowOptions []flow.Option
	transport       http.RoundTripper
	logger          logrus.FieldLogger
	mux             sync.Mutex
}

// New creates an OAuth2 round tripper for the client config.
func New(config *oauth2.Config, options ...Option) (*RoundTripper, error) {
	if config == nil {
		return nil, errors.New("oauth2 client config was nil")
	}
	ret := &RoundTripper{
		config:    config,
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		authFlow:  flow.NewBrowserFlow(),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

// TokenKey returns the store key of the configured client.
func (r *RoundTripper) TokenKey() store.TokenKey {
	return store.TokenKey{Issuer: r.config.Endpoint.TokenURL, Scopes: strings.Join(r.config.Scopes, " ")}
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// 1) Send with the cached token, if any.
	sent := r.cachedToken()
	probe := clone(req)
	if sent != nil {
		authorize(probe, sent)
	}
	resp, err := r.transport.RoundTrip(probe)
	if err != nil {
		return nil, err
	}

	// 2) If it wasn't a 401, just return it.
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// 3) Obtain a token the server has not rejected yet.
	r.logger.Info("Server requires authorization, obtaining OAuth2 token")
	tok, err := r.Token(req.Context(), sent)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain oauth2 token: %w", err)
	}

	// 4) Replay the request with the Bearer header.
	retry := clone(req)
	authorize(retry, tok)
	return r.transport.RoundTrip(retry)
}

// Token returns a valid token other than rejected, trying the store, a refresh and
// finally the interactive auth flow.
func (r *RoundTripper) Token(ctx context.Context, rejected *oauth2.Token) (*oauth2.Token, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	key := r.TokenKey()
	if cached, _ := r.store.LookupToken(key); cached != nil {
		if cached.Valid() && !sameToken(cached, rejected) {
			return cached, nil
		}
		if cached.RefreshToken != "" {
			if refreshed := r.refreshToken(ctx, cached); refreshed != nil && !sameToken(refreshed, rejected) {
				if err := r.store.AddToken(key, refreshed); err != nil {
					return nil, fmt.Errorf("failed to store refreshed token: %w", err)
				}
				r.logger.Debug("OAuth2 token refreshed")
				return refreshed, nil
			}
		}
		if err := r.store.DeleteToken(key); err != nil {
			r.logger.WithError(err).Warn("failed to drop stale token")
		}
	}

	// no valid or refreshed token; perform interactive auth
	token, err := r.authFlow.Token(ctx, r.config, r.flowOptions(ctx)...)
	if err != nil {
		return nil, err
	}
	if token == nil || token.AccessToken == "" {
		return nil, errors.New("auth flow returned no access token")
	}
	if err = r.store.AddToken(key, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

func (r *RoundTripper) cachedToken() *oauth2.Token {
	cached, _ := r.store.LookupToken(r.TokenKey())
	if cached == nil || !cached.Valid() {
		return nil
	}
	return cached
}

func (r *RoundTripper) refreshToken(ctx context.Context, cached *oauth2.Token) *oauth2.Token {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: r.transport})
	// an empty access token forces the token source to refresh
	stale := &oauth2.Token{RefreshToken: cached.RefreshToken, TokenType: cached.TokenType}
	refreshed, err := r.config.TokenSource(ctx, stale).Token()
	if err != nil {
		r.logger.WithError(err).Debug("OAuth2 token refresh failed")
		return nil
	}
	// preserve refresh token if provider omitted it
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cached.RefreshToken
	}
	return refreshed
}

func sameToken(token, other *oauth2.Token) bool {
	return other != nil && token.AccessToken == other.AccessToken
}
