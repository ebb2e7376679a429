package excel

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
	serviceID = "excel"
	kind      = "workbook"
	extension = ".xlsx"
)

// Provider implements the Excel tools on top of excelize
type Provider struct {
	*common.OfficeOps
	store *workspace.Store[*Workbook]
}

// NewProvider creates an Excel provider holding at most limit workbooks
func NewProvider(ops *common.OfficeOps, limit int) *Provider {
	return &Provider{
		OfficeOps: ops,
		store:     workspace.NewStore[*Workbook](kind, limit, ops.Gauge),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          serviceID,
		Name:        "Excel Service",
		Description: "Create and edit Excel workbooks: cells, ranges, formulas and charts",
		Category:    types.CategorySpreadsheet,
		Capabilities: []string{
			"create",
			"worksheets",
			"cells",
			"formulas",
			"charts",
			"export",
		},
		Tools: tools(),
		DataModels: []types.DataModel{
			{
				Name: "Workbook",
				Fields: map[string]string{
					"workbook_id":           "string",
					"title":                 "string",
					"file_path":             "string",
					"worksheet_count":       "number",
					"active_sheet":          "string",
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
	case "excel.create_workbook":
		return p.CreateWorkbook(ctx, params)
	case "excel.add_worksheet":
		return p.AddWorksheet(ctx, params)
	case "excel.write_cell":
		return p.WriteCell(ctx, params)
	case "excel.write_range":
		return p.WriteRange(ctx, params)
	case "excel.add_formula":
		return p.AddFormula(ctx, params)
	case "excel.create_chart":
		return p.CreateChart(ctx, params)
	case "excel.save_workbook":
		return p.SaveWorkbook(ctx, params)
	case "excel.get_workbook_info":
		return p.WorkbookInfo(ctx, params)
	case "excel.list_workbooks":
		return p.ListWorkbooks(ctx, params)
	case "excel.list_worksheets":
		return p.ListWorksheets(ctx, params)
	default:
		return param.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// Active returns metadata for every open workbook in creation order
func (p *Provider) Active() []map[string]interface{} {
	books := p.store.List()
	out := make([]map[string]interface{}, 0, len(books))
	for _, w := range books {
		_ = p.store.View(w.ID, func(w *Workbook) error {
			out = append(out, w.metadata())
			return nil
		})
	}
	return out
}

// Count returns the number of open workbooks
func (p *Provider) Count() int {
	return p.store.Len()
}

// onSheet runs fn against sheet of the workbook and re-renders on success
func (p *Provider) onSheet(workbookID, sheet string, fn func(w *Workbook) error) error {
	return p.store.Update(workbookID, func(w *Workbook) error {
		if err := w.sheet(sheet); err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}
		return w.render()
	})
}

func workbookError(workbookID, sheet, action string, err error) string {
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		return fmt.Sprintf("Workbook %s not found", workbookID)
	case errors.Is(err, errSheetNotFound):
		return fmt.Sprintf("Worksheet '%s' not found", sheet)
	default:
		return fmt.Sprintf("Failed to %s: %v", action, err)
	}
}
