package relay

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultTimeout        = 60 * time.Second
)

// Option configures a Relay.
type Option func(r *Relay)

// WithHeaders sets static headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(r *Relay) {
		for name, value := range headers {
			r.headers.Set(name, value)
		}
	}
}

// WithTransport sets the round tripper used for upstream requests.
func WithTransport(transport http.RoundTripper) Option {
	return func(r *Relay) {
		r.transport = transport
	}
}

// WithTimeout sets the overall per-request timeout, body streaming included.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Relay) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithConnectTimeout sets the connect timeout of the default transport.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(r *Relay) {
		if timeout > 0 {
			r.connectTimeout = timeout
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}
