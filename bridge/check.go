package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	authtransport "github.com/geosp/mcp-bridge/client/auth/transport"
	"github.com/geosp/mcp-bridge/config"
	"github.com/geosp/mcp-bridge/relay"
	"github.com/geosp/mcp-bridge/schema"
)

const probeProtocolVersion = "2025-06-18"

// CheckCommand verifies the config and the server.
type CheckCommand struct {
	options *Options
}

// ProbeResult describes the answer to an initialize request.
type ProbeResult struct {
	Status      string
	StatusCode  int
	ContentType string
	SessionID   string
}

// Streamable reports whether the server accepted the POST, i.e. speaks the streamable HTTP transport.
func (p *ProbeResult) Streamable() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

func (c *CheckCommand) Execute(args []string) error {
	o := c.options
	ctx := o.env.ctx
	out := o.env.stdout
	log := o.logger()

	cfg, location, err := o.loadConfig(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Config:       %s\n", location)
	_, _ = fmt.Fprintf(out, "URL:          %s\n", cfg.URL)
	reportBearer(out, cfg.Headers)

	transport, authTransport, err := newTransport(ctx, cfg, log)
	if err != nil {
		return err
	}
	if authTransport != nil {
		if _, err = authTransport.Token(ctx, nil); err != nil {
			return fmt.Errorf("failed to obtain oauth2 token: %w", err)
		}
		_, _ = fmt.Fprintln(out, "OAuth2:       token available")
	}

	result, err := Probe(ctx, cfg, transport)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Status:       %s\n", result.Status)
	_, _ = fmt.Fprintf(out, "Content-Type: %s\n", result.ContentType)
	if result.SessionID != "" {
		_, _ = fmt.Fprintf(out, "Session ID:   %s\n", result.SessionID)
	}
	if !result.Streamable() {
		return fmt.Errorf("server responded %s for url %s", result.Status, cfg.URL)
	}
	return nil
}

// Probe posts an initialize request to the configured server.
func Probe(ctx context.Context, cfg *config.Config, transport http.RoundTripper) (*ProbeResult, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = relay.DefaultTimeout
	}
	payload, err := json.Marshal(map[string]interface{}{
		"jsonrpc": schema.Version,
		"id":      1,
		"method":  schema.MethodInitialize,
		"params": map[string]interface{}{
			"clientInfo":      map[string]string{"name": "mcp-bridge", "version": Version},
			"capabilities":    map[string]interface{}{},
			"protocolVersion": probeProtocolVersion,
		},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	for name, value := range cfg.Headers {
		req.Header.Set(name, value)
	}
	req.Header.Set(schema.HeaderContentType, schema.ContentTypeJSON)
	req.Header.Set(schema.HeaderAccept, schema.AcceptStreamOrJSON)
	req.Header.Set("MCP-Protocol-Version", probeProtocolVersion)

	client := &http.Client{Transport: transport, Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	return &ProbeResult{
		Status:      resp.Status,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get(schema.HeaderContentType),
		SessionID:   resp.Header.Get(schema.HeaderSessionID),
	}, nil
}

func reportBearer(out io.Writer, headers map[string]string) {
	for name, value := range headers {
		if !strings.EqualFold(name, "Authorization") {
			continue
		}
		info, err := authtransport.InspectBearer(value)
		if err != nil {
			_, _ = fmt.Fprintln(out, "Token:        not a JWT, expiry unknown")
			continue
		}
		switch {
		case info.Expiry.IsZero():
			_, _ = fmt.Fprintln(out, "Token:        JWT without expiry")
		case info.Expired(time.Now()):
			_, _ = fmt.Fprintf(out, "Token:        EXPIRED at %s\n", info.Expiry.Format(time.RFC3339))
		default:
			_, _ = fmt.Fprintf(out, "Token:        valid until %s\n", info.Expiry.Format(time.RFC3339))
		}
	}
}
