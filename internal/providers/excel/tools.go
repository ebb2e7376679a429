package excel

import (
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

const formattingHelp = "bold, italic, font_size, font_color, font_name, bg_color, horizontal, vertical, wrap_text, border"

func tools() []types.Tool {
	return []types.Tool{
		{
			ID:          "excel.create_workbook",
			Name:        "create_workbook",
			Description: "Create a new Excel workbook",
			Parameters: []types.Parameter{
				{Name: "title", Type: "string", Description: "Workbook title, written to A1 of a new workbook", Default: defaultTitle},
				{Name: "template_path", Type: "string", Description: "Optional .xlsx or .xltx template"},
			},
			Returns: "object",
		},
		{
			ID:          "excel.add_worksheet",
			Name:        "add_worksheet",
			Description: "Add a worksheet to a workbook",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "sheet_name", Type: "string", Description: "Name of the new worksheet", Required: true},
				{Name: "position", Type: "number", Description: "Zero-based position, appends when omitted"},
			},
			Returns: "object",
		},
		{
			ID:          "excel.write_cell",
			Name:        "write_cell",
			Description: "Write a value to a cell",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "sheet_name", Type: "string", Description: "Worksheet name", Required: true},
				{Name: "cell", Type: "string", Description: "Cell reference such as A1", Required: true},
				{Name: "value", Type: "any", Description: "Value to write", Required: true},
				{Name: "formatting", Type: "object", Description: formattingHelp},
			},
			Returns: "object",
		},
		{
			ID:          "excel.write_range",
			Name:        "write_range",
			Description: "Write a block of values starting at a cell",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "sheet_name", Type: "string", Description: "Worksheet name", Required: true},
				{Name: "start_cell", Type: "string", Description: "Top-left cell of the block", Required: true},
				{Name: "data", Type: "array", Description: "Rows of values", Required: true},
				{Name: "formatting", Type: "object", Description: formattingHelp},
			},
			Returns: "object",
		},
		{
			ID:          "excel.add_formula",
			Name:        "add_formula",
			Description: "Set a formula on a cell",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "sheet_name", Type: "string", Description: "Worksheet name", Required: true},
				{Name: "cell", Type: "string", Description: "Cell reference", Required: true},
				{Name: "formula", Type: "string", Description: "Formula such as =SUM(A1:A10)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "excel.create_chart",
			Name:        "create_chart",
			Description: "Create a chart from a data range; each column is a series named by its first row",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "sheet_name", Type: "string", Description: "Worksheet name", Required: true},
				{Name: "chart_type", Type: "string", Description: "Chart type", Enum: chartTypeNames(), Required: true},
				{Name: "data_range", Type: "string", Description: "Data range such as A1:B10", Required: true},
				{Name: "chart_title", Type: "string", Description: "Chart title"},
				{Name: "position", Type: "string", Description: "Top-left cell of the chart", Default: defaultPosition},
			},
			Returns: "object",
		},
		{
			ID:          "excel.save_workbook",
			Name:        "save_workbook",
			Description: "Save a workbook to a file",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
				{Name: "file_path", Type: "string", Description: "Destination path", Required: true},
				{Name: "format", Type: "string", Description: "xlsx, or pdf and csv through Excel", Default: "xlsx"},
			},
			Returns: "object",
		},
		{
			ID:          "excel.get_workbook_info",
			Name:        "get_workbook_info",
			Description: "Get information about a workbook",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "excel.list_workbooks",
			Name:        "list_workbooks",
			Description: "List all open workbooks",
			Returns:     "object",
		},
		{
			ID:          "excel.list_worksheets",
			Name:        "list_worksheets",
			Description: "List the worksheets of a workbook",
			Parameters: []types.Parameter{
				{Name: "workbook_id", Type: "string", Description: "ID of the workbook", Required: true},
			},
			Returns: "object",
		},
	}
}
