package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/geosp/mcp-bridge/client/auth/store"
	authtransport "github.com/geosp/mcp-bridge/client/auth/transport"
	"github.com/geosp/mcp-bridge/config"
	"github.com/geosp/mcp-bridge/relay"
	"github.com/geosp/mcp-bridge/stdio"
	"github.com/sirupsen/logrus"
	"github.com/viant/scy/auth/authorizer"
	"github.com/viant/scy/auth/flow"
)

// Service runs the stdio loop against one upstream server.
type Service struct {
	config *config.Config
	relay  *relay.Relay
	reader *stdio.Reader
	logger logrus.FieldLogger
}

// Serve relays messages until stdin is closed or ctx is done.
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Infof("Starting bridge to %s", s.config.URL)
	done := make(chan error, 1)
	go func() {
		done <- s.reader.Serve(ctx, s.relay)
	}()
	select {
	case err := <-done:
		s.logger.Info("Bridge shut down")
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Interrupted, shutting down")
		return nil
	}
}

// New creates a bridge service reading messages from stdin and writing answers to stdout.
func New(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger logrus.FieldLogger) (*Service, error) {
	_, authTransport, err := newTransport(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	warnExpiredBearer(cfg.Headers, logger)
	options := []relay.Option{
		relay.WithHeaders(cfg.Headers),
		relay.WithConnectTimeout(cfg.ConnectTimeout),
		relay.WithTimeout(cfg.Timeout),
		relay.WithLogger(logger),
	}
	if authTransport != nil {
		options = append(options, relay.WithTransport(authTransport))
	}
	aRelay := relay.New(cfg.URL, stdio.NewWriter(stdout), options...)
	return &Service{
		config: cfg,
		relay:  aRelay,
		reader: stdio.NewReader(stdin, logger),
		logger: logger,
	}, nil
}

// newTransport returns the upstream transport, wrapped with OAuth2 when the config enables it.
func newTransport(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (http.RoundTripper, *authtransport.RoundTripper, error) {
	base := relay.NewTransport(cfg.ConnectTimeout)
	if cfg.Auth == nil {
		return base, nil, nil
	}
	configURL := config.ExpandPath(cfg.Auth.OAuth2ConfigURL)
	if cfg.Auth.EncryptionKey != "" {
		configURL += "|" + cfg.Auth.EncryptionKey
	}
	anAuthorizer := authorizer.New()
	oauthCfg := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := anAuthorizer.EnsureConfig(ctx, oauthCfg); err != nil {
		return nil, nil, fmt.Errorf("failed to load oauth2 config %q: %w", cfg.Auth.OAuth2ConfigURL, err)
	}
	var aStore store.Store = store.NewMemoryStore()
	if cfg.Auth.TokenCache != "" {
		fileStore, err := store.NewFileStore(config.ExpandPath(cfg.Auth.TokenCache))
		if err != nil {
			return nil, nil, err
		}
		aStore = fileStore
	}
	roundTripper, err := authtransport.New(oauthCfg.Config,
		authtransport.WithStore(aStore),
		authtransport.WithAuthFlow(flow.NewBrowserFlow()),
		authtransport.WithAuthFlowOptions(flow.WithPKCE(true)),
		authtransport.WithTransport(base),
		authtransport.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return roundTripper, roundTripper, nil
}

func warnExpiredBearer(headers map[string]string, logger logrus.FieldLogger) {
	for name, value := range headers {
		if http.CanonicalHeaderKey(name) != "Authorization" {
			continue
		}
		info, err := authtransport.InspectBearer(value)
		if err != nil {
			continue
		}
		if info.Expired(time.Now()) {
			logger.Warnf("Authorization bearer token expired at %s", info.Expiry.Format(time.RFC3339))
		}
	}
}
