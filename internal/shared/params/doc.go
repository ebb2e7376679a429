// Package params extracts typed values from tool parameter maps and builds
// tool results.
//
// Tool parameters arrive as decoded JSON, so numbers are float64 and nested
// values are map[string]interface{} or []interface{}. The helpers here hide
// that and accept native Go values as well, which keeps tests readable.
package params
