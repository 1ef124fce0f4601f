package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a parsed line is valid JSON but not a JSON-RPC object.
var ErrNotObject = errors.New("message is not a JSON object")

// Message is a JSON-RPC 2.0 message kept as raw members so that unknown fields
// and number precision survive the round trip to the upstream server.
type Message map[string]json.RawMessage

// ParseMessage decodes one JSON-RPC message.
func ParseMessage(data []byte) (Message, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrNotObject
	}
	return message, nil
}

// Method returns the message method or MethodUnknown.
func (m Message) Method() string {
	raw, ok := m["method"]
	if !ok {
		return MethodUnknown
	}
	var method string
	if err := json.Unmarshal(raw, &method); err != nil {
		return MethodUnknown
	}
	return method
}

// ID returns the raw message id, nil for notifications.
func (m Message) ID() json.RawMessage {
	return m["id"]
}

// IDString formats the id for log lines.
func (m Message) IDString() string {
	if id := m.ID(); id != nil {
		return string(id)
	}
	return "null"
}

// Arguments returns params.arguments when both are JSON objects.
func (m Message) Arguments() (map[string]json.RawMessage, bool) {
	params, ok := m.params()
	if !ok {
		return nil, false
	}
	raw, ok := params["arguments"]
	if !ok || KindOf(raw) != KindObject {
		return nil, false
	}
	var args map[string]json.RawMessage
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, false
	}
	return args, true
}

// SetArguments replaces params.arguments, keeping the remaining params members.
func (m Message) SetArguments(args map[string]json.RawMessage) error {
	params, ok := m.params()
	if !ok {
		return fmt.Errorf("message has no params object")
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	params["arguments"] = raw
	if m["params"], err = json.Marshal(params); err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	return nil
}

func (m Message) params() (map[string]json.RawMessage, bool) {
	raw, ok := m["params"]
	if !ok || KindOf(raw) != KindObject {
		return nil, false
	}
	var params map[string]json.RawMessage
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, false
	}
	return params, true
}
