package schema

import (
	"encoding/json"

	"github.com/viant/jsonrpc"
)

const (
	Version = "2.0"

	// InternalError is the JSON-RPC code used for every failed upstream exchange.
	InternalError = -32603
)

// ErrorResponse is a JSON-RPC error response synthesized by the bridge.
type ErrorResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id"`
	Error   *jsonrpc.Error  `json:"error"`
}

// NewErrorResponse creates an internal error response correlated with id; a nil id encodes as null.
func NewErrorResponse(id json.RawMessage, message string) *ErrorResponse {
	return &ErrorResponse{
		Jsonrpc: Version,
		Id:      id,
		Error:   jsonrpc.NewError(InternalError, message, nil),
	}
}
