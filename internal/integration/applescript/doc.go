// Package applescript scripts running Microsoft Office apps on macOS.
//
// The bridge is best effort. Every tool works without it; when it is enabled
// it opens working files in the app and exports formats the document
// libraries cannot write (pdf, legacy binary formats). Calls run through a
// circuit breaker so a hung app fails fast instead of stalling every tool.
//
// Off macOS, or with OFFICE365_MCP_ENABLE_APPLESCRIPT=false, every call
// returns ErrUnavailable without spawning a process.
package applescript
