package stdio

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/geosp/mcp-bridge/schema"
	"github.com/sirupsen/logrus"
)

// Forwarder handles one message read from the client.
type Forwarder interface {
	Forward(ctx context.Context, message schema.Message) error
}

// Reader reads newline delimited JSON-RPC messages.
type Reader struct {
	reader *bufio.Reader
	logger logrus.FieldLogger
}

// Serve forwards every message until the input ends or ctx is done.
// Lines that do not hold a JSON object are logged and dropped; forwarder errors are
// logged and the loop moves on to the next line. Serve returns nil once input is closed.
func (r *Reader) Serve(ctx context.Context, forwarder Forwarder) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			r.logger.WithError(err).Error("Failed to read stdin")
			return err
		}
		if text := strings.TrimSpace(line); text != "" {
			r.handle(ctx, forwarder, text)
		}
		if eof {
			r.logger.Info("stdin closed")
			return nil
		}
	}
}

func (r *Reader) handle(ctx context.Context, forwarder Forwarder, line string) {
	message, err := schema.ParseMessage([]byte(line))
	if err != nil {
		r.logger.WithField("line", truncate(line, 200)).Warnf("Invalid JSON: %v", err)
		return
	}
	if err = forwarder.Forward(ctx, message); err != nil {
		r.logger.WithError(err).Warnf("Failed to forward %s (id=%s)", message.Method(), message.IDString())
	}
}

func truncate(text string, size int) string {
	if len(text) <= size {
		return text
	}
	return text[:size] + "..."
}

// NewReader creates a message reader.
func NewReader(r io.Reader, logger logrus.FieldLogger) *Reader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reader{reader: bufio.NewReader(r), logger: logger}
}
