// Package logging builds the zap loggers used across the server.
//
// Production logs are JSON and development logs are colored console lines.
// Both go to stderr because in stdio mode stdout belongs to the MCP
// protocol. A log file, when configured, always receives JSON.
//
//	logger, err := logging.New(logging.Config{Level: "INFO", File: "/var/log/office-mcp.log"})
//	logger.Named("powerpoint").Info("Presentation created", zap.String("presentation_id", id))
package logging
