package schema

import protoschema "github.com/viant/mcp-protocol/schema"

const (
	MethodInitialize = protoschema.MethodInitialize
	MethodToolsCall  = protoschema.MethodToolsCall

	// MethodUnknown stands in for messages without a method (responses, malformed input).
	MethodUnknown = "unknown"
)

const (
	HeaderSessionID   = "mcp-session-id"
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"

	ContentTypeJSON        = "application/json"
	ContentTypeEventStream = "text/event-stream"

	// AcceptStreamOrJSON is sent on every request so the server may choose either framing.
	AcceptStreamOrJSON = ContentTypeEventStream + ", " + ContentTypeJSON
)
