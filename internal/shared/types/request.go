package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string                 `json:"tool_id" binding:"required"`
	Params   map[string]interface{} `json:"params"`
	ClientID *string                `json:"client_id,omitempty"`
}

// DiscoverRequest represents an intent-based service lookup
type DiscoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// ResourceContent is a read-only document served by URI
type ResourceContent struct {
	URI      string      `json:"uri"`
	Name     string      `json:"name"`
	MIMEType string      `json:"mime_type"`
	Data     interface{} `json:"data"`
}
