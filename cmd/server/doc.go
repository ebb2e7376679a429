// Package main is the entry point for the Office 365 MCP server.
//
// The server lets MCP clients build PowerPoint, Word and Excel files on
// disk and, on macOS, open and export them through the Office apps.
//
// Architecture:
//
//	MCP client (stdio) → mcp adapter ┐
//	                                 ├→ Service registry → powerpoint | word | excel | office
//	HTTP client ───────→ gin router ─┘
//
// Configuration:
//   - Defaults, then an optional JSON/YAML/TOML file, then OFFICE365_MCP_* variables
//   - CLI flags override all of the above
//
// Usage:
//
//	# MCP over stdio (default)
//	./server
//
//	# HTTP API on port 9000 with debug logs
//	./server -transport http -port 9000 -dev
//
//	# Write the effective configuration and exit
//	./server -config office.yaml -write-config effective.toml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
