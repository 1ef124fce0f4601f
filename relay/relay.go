package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/geosp/mcp-bridge/schema"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Writer receives documents destined for the local client, one call per document.
type Writer interface {
	Write(document []byte) error
}

// Relay sends each message to the upstream MCP endpoint and writes every document of
// the answer to its Writer. Calls to Forward must not overlap.
type Relay struct {
	url            string
	headers        http.Header
	transport      http.RoundTripper
	connectTimeout time.Duration
	timeout        time.Duration
	client         *http.Client
	session        Session
	writer         Writer
	logger         logrus.FieldLogger
}

// outputError marks failures of the Writer; they abandon the exchange without an error reply.
type outputError struct {
	err error
}

func (e *outputError) Error() string { return e.err.Error() }

func (e *outputError) Unwrap() error { return e.err }

// Session returns the session state owned by the relay.
func (r *Relay) Session() *Session {
	return &r.session
}

// Forward performs one exchange for message. Upstream failures are reported to the
// client as a JSON-RPC internal error carrying the message id; only a failure to
// write to the client is returned.
func (r *Relay) Forward(ctx context.Context, message schema.Message) error {
	method := message.Method()
	logger := r.logger.WithFields(logrus.Fields{
		"exchange": uuid.NewString(),
	})
	err := r.exchange(ctx, logger, method, message)
	if err == nil {
		return nil
	}
	var outErr *outputError
	if errors.As(err, &outErr) {
		logger.WithError(outErr.err).Warn("Stdout broken")
		return outErr.err
	}
	logger.WithError(err).Errorf("Error: %v (method=%s, id=%s)", err, method, message.IDString())
	reply, mErr := json.Marshal(schema.NewErrorResponse(message.ID(), err.Error()))
	if mErr != nil {
		return mErr
	}
	if wErr := r.writer.Write(reply); wErr != nil {
		logger.WithError(wErr).Warn("Stdout broken")
		return wErr
	}
	return nil
}

func (r *Relay) exchange(ctx context.Context, logger logrus.FieldLogger, method string, message schema.Message) error {
	if method == schema.MethodToolsCall {
		if err := r.repair(logger, message); err != nil {
			return err
		}
	}
	logger.Infof("Sending: %s (id=%s)", method, message.IDString())

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header = r.requestHeaders(method)

	response, err := r.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("server responded %s for url %s", response.Status, r.url)
	}

	if method == schema.MethodInitialize {
		if sessionID := response.Header.Get(schema.HeaderSessionID); sessionID != "" {
			if previous, ok := r.session.ID(); ok && previous != sessionID {
				logger.Infof("Session ID replaced: %s -> %s", previous, sessionID)
			}
			r.session.Set(sessionID)
			logger.Infof("Session ID: %s", sessionID)
		}
	}

	contentType := response.Header.Get(schema.HeaderContentType)
	if strings.Contains(contentType, schema.ContentTypeEventStream) {
		return r.forwardStream(logger, response.Body)
	}
	return r.forwardDocument(logger, contentType, response.Body)
}

func (r *Relay) repair(logger logrus.FieldLogger, message schema.Message) error {
	args, ok := message.Arguments()
	if !ok {
		return nil
	}
	repaired, fixes := RepairArguments(args)
	if len(fixes) == 0 {
		return nil
	}
	logger.Infof("Fixed stringified params: %s", formatFixes(fixes))
	return message.SetArguments(repaired)
}

func (r *Relay) requestHeaders(method string) http.Header {
	header := r.headers.Clone()
	header.Set(schema.HeaderContentType, schema.ContentTypeJSON)
	header.Set(schema.HeaderAccept, schema.AcceptStreamOrJSON)
	if sessionID, ok := r.session.ID(); ok && method != schema.MethodInitialize {
		header.Set(schema.HeaderSessionID, sessionID)
	}
	return header
}

func (r *Relay) forwardStream(logger logrus.FieldLogger, body io.Reader) error {
	logger.Debug("Reading SSE response...")
	decoder := NewDecoder(body, func(data string, err error) {
		logger.WithField("data", data).Warnf("Invalid JSON in SSE: %v", err)
	})
	for {
		document, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event stream: %w", err)
		}
		logger.Debugf("Received SSE: id=%s", documentID(document))
		if err = r.writer.Write(document); err != nil {
			return &outputError{err: err}
		}
	}
}

func (r *Relay) forwardDocument(logger logrus.FieldLogger, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		logger.Debugf("Empty response (content type: %q)", contentType)
		return nil
	}
	if !json.Valid(data) {
		logger.Warnf("Unexpected content type: %q, body is not JSON", contentType)
		return nil
	}
	logger.Debugf("Received JSON: id=%s", documentID(data))
	if err = r.writer.Write(data); err != nil {
		return &outputError{err: err}
	}
	return nil
}

func documentID(document []byte) string {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(document, &probe); err != nil || probe.ID == nil {
		return "null"
	}
	return string(probe.ID)
}

// NewTransport creates the default upstream transport with the given connect timeout.
func NewTransport(connectTimeout time.Duration) *http.Transport {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// New creates a relay posting to URL and writing answers to writer.
func New(URL string, writer Writer, options ...Option) *Relay {
	ret := &Relay{
		url:            URL,
		headers:        http.Header{},
		connectTimeout: DefaultConnectTimeout,
		timeout:        DefaultTimeout,
		writer:         writer,
		logger:         logrus.StandardLogger(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.transport == nil {
		ret.transport = NewTransport(ret.connectTimeout)
	}
	ret.client = &http.Client{Transport: ret.transport, Timeout: ret.timeout}
	return ret
}
