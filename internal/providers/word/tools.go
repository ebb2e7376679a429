package word

import (
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

func tools() []types.Tool {
	return []types.Tool{
		{
			ID:          "word.create_document",
			Name:        "create_document",
			Description: "Create a new Word document",
			Parameters: []types.Parameter{
				{Name: "title", Type: "string", Description: "Document title, added as a heading unless it is the default", Default: defaultTitle},
				{Name: "template_path", Type: "string", Description: "Optional .docx or .dotx template"},
			},
			Returns: "object",
		},
		{
			ID:          "word.add_heading",
			Name:        "add_heading",
			Description: "Add a heading to a document",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
				{Name: "text", Type: "string", Description: "Heading text", Required: true},
				{Name: "level", Type: "number", Description: "Heading level (1-6)", Default: 1},
				{Name: "style", Type: "string", Description: "Optional paragraph style name"},
			},
			Returns: "object",
		},
		{
			ID:          "word.add_paragraph",
			Name:        "add_paragraph",
			Description: "Add a paragraph of text to a document",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
				{Name: "text", Type: "string", Description: "Paragraph text", Required: true},
				{Name: "style", Type: "string", Description: "Optional paragraph style name"},
				{Name: "formatting", Type: "object", Description: "font_size, font_name, bold, italic, color (#RRGGBB), alignment"},
			},
			Returns: "object",
		},
		{
			ID:          "word.add_list",
			Name:        "add_list",
			Description: "Add a bulleted or numbered list to a document",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
				{Name: "items", Type: "array", Description: "List items", Required: true},
				{Name: "list_type", Type: "string", Description: "Type of list", Enum: []string{"bullet", "number"}, Default: "bullet"},
				{Name: "style", Type: "string", Description: "Optional numbering style name"},
			},
			Returns: "object",
		},
		{
			ID:          "word.add_table",
			Name:        "add_table",
			Description: "Add a table to a document",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
				{Name: "rows", Type: "number", Description: "Number of rows", Required: true},
				{Name: "columns", Type: "number", Description: "Number of columns", Required: true},
				{Name: "data", Type: "array", Description: "Optional rows of cell values; the first row is styled as a header"},
				{Name: "style", Type: "string", Description: "Optional table style name"},
			},
			Returns: "object",
		},
		{
			ID:          "word.save_document",
			Name:        "save_document",
			Description: "Save a document to file",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
				{Name: "file_path", Type: "string", Description: "Path to save the file", Required: true},
				{Name: "format", Type: "string", Description: "File format", Enum: []string{"docx", "pdf", "doc", "rtf", "txt"}, Default: "docx"},
			},
			Returns: "object",
		},
		{
			ID:          "word.get_document_info",
			Name:        "get_document_info",
			Description: "Get metadata and elements of a document",
			Parameters: []types.Parameter{
				{Name: "document_id", Type: "string", Description: "ID of the document", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "word.list_documents",
			Name:        "list_documents",
			Description: "List all open documents",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
	}
}
