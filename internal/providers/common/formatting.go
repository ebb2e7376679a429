package common

import (
	v "github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

// TextFormattingSchema checks the formatting object accepted by the text
// tools of PowerPoint and Word
var TextFormattingSchema = v.Schema{
	{Field: "font_size", Type: v.TypeNumber, MinValue: v.Bound(8), MaxValue: v.Bound(72)},
	{Field: "font_name", Type: v.TypeString, MaxLength: 100},
	{Field: "bold", Type: v.TypeBool},
	{Field: "italic", Type: v.TypeBool},
	{Field: "color", Type: v.TypeString, Pattern: v.ColorPattern},
	{Field: "alignment", Type: v.TypeString, Choices: []string{"left", "center", "right", "justify"}},
}
