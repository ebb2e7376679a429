package word

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/workspace"
)

const (
	serviceID = "word"
	kind      = "document"
	extension = ".docx"
)

// Provider implements the Word tools on top of GoWord
type Provider struct {
	*common.OfficeOps
	store *workspace.Store[*Document]
}

// NewProvider creates a Word provider holding at most limit documents
func NewProvider(ops *common.OfficeOps, limit int) *Provider {
	return &Provider{
		OfficeOps: ops,
		store:     workspace.NewStore[*Document](kind, limit, ops.Gauge),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          serviceID,
		Name:        "Word Service",
		Description: "Create and edit Word documents: headings, paragraphs, lists and tables",
		Category:    types.CategoryDocument,
		Capabilities: []string{
			"create",
			"headings",
			"paragraphs",
			"lists",
			"tables",
			"export",
		},
		Tools: tools(),
		DataModels: []types.DataModel{
			{
				Name: "Document",
				Fields: map[string]string{
					"document_id":           "string",
					"title":                 "string",
					"file_path":             "string",
					"paragraph_count":       "number",
					"applescript_available": "boolean",
					"created_at":            "string",
				},
			},
		},
	}
}

// Execute routes to the tool implementation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "word.create_document":
		return p.CreateDocument(ctx, params)
	case "word.add_heading":
		return p.AddHeading(ctx, params)
	case "word.add_paragraph":
		return p.AddParagraph(ctx, params)
	case "word.add_list":
		return p.AddList(ctx, params)
	case "word.add_table":
		return p.AddTable(ctx, params)
	case "word.save_document":
		return p.SaveDocument(ctx, params)
	case "word.get_document_info":
		return p.DocumentInfo(ctx, params)
	case "word.list_documents":
		return p.ListDocuments(ctx, params)
	default:
		return param.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// Active returns metadata for every open document in creation order
func (p *Provider) Active() []map[string]interface{} {
	docs := p.store.List()
	out := make([]map[string]interface{}, 0, len(docs))
	for _, d := range docs {
		_ = p.store.View(d.ID, func(d *Document) error {
			out = append(out, d.metadata())
			return nil
		})
	}
	return out
}

// Count returns the number of open documents
func (p *Provider) Count() int {
	return p.store.Len()
}

// addElement appends el and re-renders; the element is dropped again when
// rendering fails so the list always matches the working file
func (p *Provider) addElement(docID string, el *Element) (map[string]interface{}, error) {
	var data map[string]interface{}
	err := p.store.Update(docID, func(d *Document) error {
		d.elements = append(d.elements, el)
		if err := d.render(); err != nil {
			d.elements = d.elements[:len(d.elements)-1]
			return err
		}
		data = el.data(d.ID)
		return nil
	})
	return data, err
}

func documentError(docID, action string, err error) string {
	if errors.Is(err, workspace.ErrNotFound) {
		return fmt.Sprintf("Document %s not found", docID)
	}
	return fmt.Sprintf("Failed to %s: %v", action, err)
}
