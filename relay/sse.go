package relay

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const dataPrefix = "data: "

// Decoder reads JSON documents carried on "data: " lines of an event stream.
// Each data line is expected to hold one complete document; other SSE fields are ignored.
type Decoder struct {
	reader    *bufio.Reader
	onInvalid func(data string, err error)
	done      bool
}

// Decode returns the next document or io.EOF once the stream ends.
// Data lines that are not valid JSON are reported to onInvalid and skipped.
func (d *Decoder) Decode() (json.RawMessage, error) {
	for !d.done {
		line, err := d.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			d.done = true
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		data := strings.TrimRight(line[len(dataPrefix):], " \t\r\n")
		if data == "" {
			continue
		}
		var document json.RawMessage
		if err := json.Unmarshal([]byte(data), &document); err != nil {
			if d.onInvalid != nil {
				d.onInvalid(data, err)
			}
			continue
		}
		return document, nil
	}
	return nil, io.EOF
}

// NewDecoder creates an event stream decoder; onInvalid may be nil.
func NewDecoder(r io.Reader, onInvalid func(data string, err error)) *Decoder {
	return &Decoder{reader: bufio.NewReader(r), onInvalid: onInvalid}
}
