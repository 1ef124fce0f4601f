package transport

import (
	"net/http"

	"github.com/geosp/mcp-bridge/client/auth/store"
	"github.com/sirupsen/logrus"
	"github.com/viant/scy/auth/flow"
)

type Option func(*RoundTripper)

// WithStore sets store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithAuthFlow sets auth flow
func WithAuthFlow(flow flow.AuthFlow) Option {
	return func(t *RoundTripper) {
		t.authFlow = flow
	}
}

// WithAuthFlowOptions sets options passed to every auth flow
func WithAuthFlowOptions(options ...flow.Option) Option {
	return func(t *RoundTripper) {
		t.authFlowOptions = append(t.authFlowOptions, options...)
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithLogger sets logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}
