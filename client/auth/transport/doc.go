// Package transport implements an http.RoundTripper that authorizes requests with
// an OAuth2 bearer token.
//
// Requests are first sent with the cached token, if any. When the server
// challenges the client with `401 Unauthorized` the RoundTripper refreshes the
// token or runs the interactive auth flow, stores the result and replays the
// request once.
package transport
