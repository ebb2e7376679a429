package word

import (
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	v "github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

const defaultTitle = "New Document"

var (
	documentIDRule = v.Rule{Field: "document_id", Required: true, Type: v.TypeString, Pattern: id.HandlePattern}
	styleRule      = v.Rule{Field: "style", Type: v.TypeString, MaxLength: 100}

	createSchema = v.Schema{
		{Field: "title", Type: v.TypeString, MaxLength: v.MaxTitleLength},
		{Field: "template_path", Type: v.TypeString},
	}

	headingSchema = v.Schema{
		documentIDRule,
		{Field: "text", Required: true, Type: v.TypeString, MinLength: 1, MaxLength: v.MaxTitleLength},
		{Field: "level", Type: v.TypeNumber},
		styleRule,
	}

	paragraphSchema = v.Schema{
		documentIDRule,
		{Field: "text", Required: true, Type: v.TypeString, MaxLength: v.MaxTextLength},
		styleRule,
		{Field: "formatting", Type: v.TypeObject},
	}

	listSchema = v.Schema{
		documentIDRule,
		{Field: "items", Required: true, Type: v.TypeArray},
		{Field: "list_type", Type: v.TypeString, Choices: []string{"bullet", "number"}},
		styleRule,
	}

	tableSchema = v.Schema{
		documentIDRule,
		{Field: "rows", Required: true, Type: v.TypeNumber, MinValue: v.Bound(1), MaxValue: v.Bound(1000)},
		{Field: "columns", Required: true, Type: v.TypeNumber, MinValue: v.Bound(1), MaxValue: v.Bound(63)},
		{Field: "data", Type: v.TypeArray},
		styleRule,
	}

	saveSchema = v.Schema{
		documentIDRule,
		{Field: "file_path", Required: true, Type: v.TypeString, MinLength: 1},
		{Field: "format", Type: v.TypeString, MaxLength: 10},
	}

	infoSchema = v.Schema{documentIDRule}
)
