// Package relay forwards JSON-RPC messages read from a local MCP client to a remote
// MCP server over HTTP.
//
// Every message is sent as its own POST request. The server answers either with a
// single JSON document or with a Server-Sent-Events stream; each document found in
// the answer is handed to a Writer as soon as it arrives. The session id issued by
// the server on initialize is echoed on every later request.
//
// Before a tools/call request is sent, its arguments are repaired: values that
// a client encoded as JSON text although they are objects or arrays are decoded
// back into structured values (see RepairArguments).
package relay
