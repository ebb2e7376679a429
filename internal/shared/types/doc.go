// Package types provides shared data structures for the Office MCP backend.
//
// These types form the tool contract between transports (HTTP, MCP stdio)
// and the service providers that manipulate Office documents.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Parameter: Tool argument description, used to build input schemas
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - DiscoverRequest: Intent-based service lookup
//   - ResourceContent: Read-only resource payload
//
// Example Usage:
//
//	result, err := registry.Execute(ctx, "powerpoint.add_slide", map[string]interface{}{
//	    "presentation_id": presID,
//	    "layout":          "Title Only",
//	}, &types.Context{Transport: "http"})
package types
