// Package config provides 12-factor configuration for the Office MCP backend.
//
// Values are layered: Default(), then an optional JSON, YAML or TOML file,
// then environment variables prefixed with OFFICE365_MCP_.
//
// Configuration Sections:
//   - Server: transport selection and HTTP bind address
//   - Office: temp and template directories, object limits, AppleScript toggle
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting of the HTTP API
//   - Fetch: remote image download limits
//
// Example Usage:
//
//	cfg, err := config.Load(*configFile)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = cfg.Save("~/.config/office365_mcp/config.yaml")
//
// Environment Variables:
//   - OFFICE365_MCP_CONFIG_FILE
//   - OFFICE365_MCP_HTTP_HOST, _HTTP_PORT, _TRANSPORT
//   - OFFICE365_MCP_TEMP_DIR, _TEMPLATES_DIR, _MAX_PRESENTATIONS, _MAX_DOCUMENTS, _MAX_WORKBOOKS
//   - OFFICE365_MCP_ENABLE_APPLESCRIPT, _ENABLE_CLOUD_API, _APPLESCRIPT_TIMEOUT
//   - OFFICE365_MCP_LOG_LEVEL, _LOG_DEV
//   - OFFICE365_MCP_RATE_LIMIT_RPS, _RATE_LIMIT_BURST, _RATE_LIMIT_ENABLED
//   - OFFICE365_MCP_FETCH_TIMEOUT, _FETCH_MAX_RETRIES, _FETCH_MAX_BYTES, _FETCH_RPS
package config
