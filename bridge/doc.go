// Package bridge implements the mcp-bridge command.
//
// Without a command, mcp-bridge loads its config and relays JSON-RPC messages
// between stdin/stdout and the configured MCP server until stdin is closed:
//
//	mcp-bridge --config work
//
// Commands:
//
//	init          create an example config in the config directory
//	list-configs  list configs in the config directory
//	check         load the config and probe the server with initialize
package bridge
