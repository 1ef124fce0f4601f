// Package stdio implements the client side of the stdio transport: one JSON-RPC
// message per input line, one JSON document per output line.
package stdio
