package powerpoint

import (
	"strings"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

func tools() []types.Tool {
	return []types.Tool{
		{
			ID:          "powerpoint.create_presentation",
			Name:        "create_presentation",
			Description: "Create a new PowerPoint presentation with a title slide",
			Parameters: []types.Parameter{
				{Name: "title", Type: "string", Description: "Presentation title", Required: true},
				{Name: "theme", Type: "string", Description: "Theme name", Enum: themeNames(), Default: ThemeDefault},
				{Name: "template_path", Type: "string", Description: "Optional .pptx or .potx template"},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.add_slide",
			Name:        "add_slide",
			Description: "Add a new slide to a presentation",
			Parameters: []types.Parameter{
				{Name: "presentation_id", Type: "string", Description: "ID of the presentation", Required: true},
				{Name: "layout", Type: "string", Description: layoutDescription(), Default: LayoutTitleAndContent},
				{Name: "position", Type: "number", Description: "Zero-based insert position, appends when omitted"},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.add_text_to_slide",
			Name:        "add_text_to_slide",
			Description: "Add text content to a slide placeholder",
			Parameters: []types.Parameter{
				{Name: "slide_id", Type: "string", Description: "ID of the slide", Required: true},
				{Name: "text", Type: "string", Description: "Text content to add", Required: true},
				{Name: "placeholder", Type: "string", Description: "Target placeholder", Enum: []string{"title", "content", "subtitle"}, Default: "content"},
				{Name: "formatting", Type: "object", Description: "font_size, font_name, bold, italic, color (#RRGGBB), alignment"},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.add_image_to_slide",
			Name:        "add_image_to_slide",
			Description: "Add an image from a local path or http(s) URL to a slide",
			Parameters: []types.Parameter{
				{Name: "slide_id", Type: "string", Description: "ID of the slide", Required: true},
				{Name: "image_source", Type: "string", Description: "Path to image file or URL", Required: true},
				{Name: "position", Type: "object", Description: "x, y in points", Default: map[string]interface{}{"x": 100, "y": 100}},
				{Name: "size", Type: "object", Description: "width, height in points", Default: map[string]interface{}{"width": 400, "height": 300}},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.add_speaker_notes",
			Name:        "add_speaker_notes",
			Description: "Add speaker notes to a slide",
			Parameters: []types.Parameter{
				{Name: "slide_id", Type: "string", Description: "ID of the slide", Required: true},
				{Name: "notes", Type: "string", Description: "Speaker notes content", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.save_presentation",
			Name:        "save_presentation",
			Description: "Save a presentation to file",
			Parameters: []types.Parameter{
				{Name: "presentation_id", Type: "string", Description: "ID of the presentation", Required: true},
				{Name: "file_path", Type: "string", Description: "Path to save the file", Required: true},
				{Name: "format", Type: "string", Description: "File format", Enum: []string{"pptx", "pdf", "ppt"}, Default: "pptx"},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.get_presentation_info",
			Name:        "get_presentation_info",
			Description: "Get metadata and slides of a presentation",
			Parameters: []types.Parameter{
				{Name: "presentation_id", Type: "string", Description: "ID of the presentation", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "powerpoint.list_presentations",
			Name:        "list_presentations",
			Description: "List all open presentations",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
	}
}

// Unknown layouts fall back to Title and Content, so the names are listed
// rather than enforced as an enum
func layoutDescription() string {
	return "Slide layout name: " + strings.Join(LayoutNames(), ", ") + ". Unknown names use " + LayoutTitleAndContent
}
