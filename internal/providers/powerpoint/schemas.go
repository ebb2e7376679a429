package powerpoint

import (
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	v "github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

// Themes tint the title text; default leaves the library colours alone
const (
	ThemeDefault   = "default"
	ThemeModern    = "modern"
	ThemeClassic   = "classic"
	ThemeMinimal   = "minimal"
	ThemeCorporate = "corporate"
)

var themeAccents = map[string]string{
	ThemeModern:    "#2E75B6",
	ThemeClassic:   "#1F3864",
	ThemeMinimal:   "#404040",
	ThemeCorporate: "#C00000",
}

func themeNames() []string {
	return []string{ThemeDefault, ThemeModern, ThemeClassic, ThemeMinimal, ThemeCorporate}
}

var (
	presentationIDRule = v.Rule{Field: "presentation_id", Required: true, Type: v.TypeString, Pattern: id.HandlePattern}
	slideIDRule        = v.Rule{Field: "slide_id", Required: true, Type: v.TypeString, MaxLength: v.MaxIDLength, Pattern: v.SafeIDPattern}

	createSchema = v.Schema{
		{Field: "title", Required: true, Type: v.TypeString, MinLength: 1, MaxLength: v.MaxTitleLength},
		{Field: "theme", Type: v.TypeString, Choices: themeNames()},
		{Field: "template_path", Type: v.TypeString},
	}

	addSlideSchema = v.Schema{
		presentationIDRule,
		{Field: "layout", Type: v.TypeString, MaxLength: 100},
		{Field: "position", Type: v.TypeNumber, MinValue: v.Bound(0)},
	}

	addTextSchema = v.Schema{
		slideIDRule,
		{Field: "text", Required: true, Type: v.TypeString, MinLength: 1, MaxLength: v.MaxTextLength},
		{Field: "placeholder", Type: v.TypeString, Choices: []string{"title", "content", "subtitle"}},
		{Field: "formatting", Type: v.TypeObject},
	}

	addImageSchema = v.Schema{
		slideIDRule,
		{Field: "image_source", Required: true, Type: v.TypeString, MinLength: 1},
		{Field: "position", Type: v.TypeObject},
		{Field: "size", Type: v.TypeObject},
	}

	positionSchema = v.Schema{
		{Field: "x", Type: v.TypeNumber, MinValue: v.Bound(0)},
		{Field: "y", Type: v.TypeNumber, MinValue: v.Bound(0)},
	}

	sizeSchema = v.Schema{
		{Field: "width", Type: v.TypeNumber, MinValue: v.Bound(0.1)},
		{Field: "height", Type: v.TypeNumber, MinValue: v.Bound(0.1)},
	}

	notesSchema = v.Schema{
		slideIDRule,
		{Field: "notes", Required: true, Type: v.TypeString, MaxLength: v.MaxTextLength},
	}

	saveSchema = v.Schema{
		presentationIDRule,
		{Field: "file_path", Required: true, Type: v.TypeString, MinLength: 1},
		{Field: "format", Type: v.TypeString, MaxLength: 10},
	}

	infoSchema = v.Schema{presentationIDRule}
)
