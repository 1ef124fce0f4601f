package stdio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
)

// ErrClosed reports that the client stopped reading output.
var ErrClosed = errors.New("output closed")

// Writer writes JSON documents one per line.
type Writer struct {
	mu     sync.Mutex
	writer *bufio.Writer
}

// Write emits document on a single line and flushes it.
func (w *Writer) Write(document []byte) error {
	line := &bytes.Buffer{}
	if err := json.Compact(line, document); err != nil {
		return fmt.Errorf("invalid output document: %w", err)
	}
	line.WriteByte('\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.writer.Write(line.Bytes()); err != nil {
		return wrapClosed(err)
	}
	return wrapClosed(w.writer.Flush())
}

func wrapClosed(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return err
}

// NewWriter creates a line writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: bufio.NewWriter(w)}
}
