package excel

import (
	"regexp"

	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	v "github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

const (
	defaultTitle    = "New Workbook"
	defaultPosition = "E5"
)

// colorPattern accepts RRGGBB with or without a leading #
var colorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

var (
	workbookIDRule = v.Rule{Field: "workbook_id", Required: true, Type: v.TypeString, Pattern: id.HandlePattern}
	sheetNameRule  = v.Rule{Field: "sheet_name", Required: true, Type: v.TypeString, MinLength: 1, MaxLength: 31}
	cellRule       = v.Rule{Field: "cell", Required: true, Type: v.TypeString, MinLength: 2, MaxLength: 10}

	createSchema = v.Schema{
		{Field: "title", Type: v.TypeString, MaxLength: v.MaxTitleLength},
		{Field: "template_path", Type: v.TypeString},
	}

	addWorksheetSchema = v.Schema{
		workbookIDRule,
		sheetNameRule,
		{Field: "position", Type: v.TypeNumber, MinValue: v.Bound(0)},
	}

	writeCellSchema = v.Schema{
		workbookIDRule,
		sheetNameRule,
		cellRule,
		{Field: "value", Required: true},
		{Field: "formatting", Type: v.TypeObject},
	}

	writeRangeSchema = v.Schema{
		workbookIDRule,
		sheetNameRule,
		{Field: "start_cell", Required: true, Type: v.TypeString, MinLength: 2, MaxLength: 10},
		{Field: "data", Required: true, Type: v.TypeArray},
		{Field: "formatting", Type: v.TypeObject},
	}

	formulaSchema = v.Schema{
		workbookIDRule,
		sheetNameRule,
		cellRule,
		{Field: "formula", Required: true, Type: v.TypeString, MinLength: 1, MaxLength: 8192},
	}

	chartSchema = v.Schema{
		workbookIDRule,
		sheetNameRule,
		{Field: "chart_type", Required: true, Type: v.TypeString, MinLength: 1},
		{Field: "data_range", Required: true, Type: v.TypeString, MinLength: 5},
		{Field: "chart_title", Type: v.TypeString, MaxLength: v.MaxTitleLength},
		{Field: "position", Type: v.TypeString, MaxLength: 10},
	}

	saveSchema = v.Schema{
		workbookIDRule,
		{Field: "file_path", Required: true, Type: v.TypeString, MinLength: 1},
		{Field: "format", Type: v.TypeString, MaxLength: 10},
	}

	infoSchema = v.Schema{workbookIDRule}

	cellFormattingSchema = v.Schema{
		{Field: "bold", Type: v.TypeBool},
		{Field: "italic", Type: v.TypeBool},
		{Field: "font_size", Type: v.TypeNumber, MinValue: v.Bound(1), MaxValue: v.Bound(409)},
		{Field: "font_color", Type: v.TypeString, Pattern: colorPattern},
		{Field: "font_name", Type: v.TypeString, MaxLength: 100},
		{Field: "bg_color", Type: v.TypeString, Pattern: colorPattern},
		{Field: "horizontal", Type: v.TypeString, Choices: []string{"general", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}},
		{Field: "vertical", Type: v.TypeString, Choices: []string{"top", "center", "bottom", "justify", "distributed"}},
		{Field: "wrap_text", Type: v.TypeBool},
		{Field: "border", Type: v.TypeBool},
	}
)
