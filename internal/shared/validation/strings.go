package validation

import "regexp"

// Length limits in runes
const (
	MaxIDLength    = 128
	MaxTitleLength = 255
	MaxTextLength  = 10000
)

var (
	// SafeIDPattern matches slide and element IDs
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// ToolIDPattern matches "service.tool"
	ToolIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.[a-zA-Z0-9_.-]+$`)
	// ColorPattern matches #RRGGBB
	ColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	// URLPattern matches http(s) URLs, case-insensitively
	URLPattern = regexp.MustCompile(`(?i)^https?://`)
)

var toolIDSchema = Schema{
	{Field: "tool_id", Required: true, Type: TypeString, MinLength: 1, MaxLength: MaxIDLength, Pattern: ToolIDPattern},
}

// ValidateToolID checks that id has the "service.tool" shape
func ValidateToolID(id string) error {
	var value interface{}
	if id != "" {
		value = id
	}
	return toolIDSchema.Validate(map[string]interface{}{"tool_id": value})
}

// IsURL reports whether s is an http(s) URL rather than a local path
func IsURL(s string) bool {
	return URLPattern.MatchString(s)
}
