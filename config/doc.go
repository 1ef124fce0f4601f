// Package config locates, loads and creates bridge configuration files.
//
// A config is searched in this order:
//
//   - a URL with a scheme (file://, https://, s3://, ...) or an absolute path that exists
//   - <dir>/<name>, then <dir>/<name>.json; <dir>/config.json when no name is given
//   - ./config.json (deprecated)
//   - ./mcp_http_bridge/config.json (deprecated)
//
// where dir is $MCP_BRIDGE_CONFIG_DIR or ~/.config/mcp-bridge.
//
// Example config:
//
//	{
//	  "url": "https://mcp.example.com/mcp",
//	  "headers": {"Authorization": "Bearer ..."},
//	  "timeout": "60s",
//	  "connectTimeout": 10
//	}
package config
