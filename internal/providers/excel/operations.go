package excel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

var errSheetExists = errors.New("worksheet already exists")

// CreateWorkbook starts a workbook. A blank workbook gets the title in A1 of
// Sheet1; a template is used as is.
func (p *Provider) CreateWorkbook(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := createSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	title := param.GetStringDefault(params, "title", defaultTitle)
	w := &Workbook{
		ID:        string(id.NewHandle()),
		Title:     title,
		CreatedAt: p.Timestamp(),
	}

	if templatePath, ok := param.GetString(params, "template_path"); ok && templatePath != "" {
		resolved, err := validation.ValidateFilePath(templatePath, true, paths.ExtXLSX, paths.ExtXLTX)
		if err != nil {
			return param.Failure(err.Error())
		}
		f, err := excelize.OpenFile(resolved)
		if err != nil {
			return param.Failuref("Failed to open template: %v", err)
		}
		w.file = f
		w.Template = resolved
	} else {
		f, err := blankWorkbook(title)
		if err != nil {
			return param.Failuref("Failed to create workbook: %v", err)
		}
		w.file = f
	}

	if err := w.file.SetDocProps(&excelize.DocProperties{
		Title:          title,
		Creator:        "Office MCP",
		LastModifiedBy: "Office MCP",
	}); err != nil {
		p.Log().Warn("Could not set workbook properties", zap.Error(err))
	}

	w.FilePath = p.Workspace.Path(w.ID, extension)
	if err := w.render(); err != nil {
		_ = w.file.Close()
		return param.Failuref("Failed to create workbook: %v", err)
	}
	if err := p.store.Add(w.ID, w); err != nil {
		_ = w.file.Close()
		_ = p.Workspace.Remove(w.ID, extension)
		return param.Failure(err.Error())
	}

	opened := p.OpenInApp(ctx, applescript.AppExcel, w.FilePath)

	var data map[string]interface{}
	_ = p.store.Update(w.ID, func(w *Workbook) error {
		w.AppleScriptAvailable = opened
		data = w.metadata()
		return nil
	})

	p.Log().Info("Created workbook", zap.String("workbook_id", w.ID), zap.String("title", title))
	return param.Success(data)
}

func blankWorkbook(title string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", styleID); err != nil {
		return nil, err
	}
	return f, nil
}

// AddWorksheet appends a worksheet or inserts it at a zero-based position
func (p *Provider) AddWorksheet(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := addWorksheetSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	name, _ := param.GetString(params, "sheet_name")
	position, hasPosition := param.GetInt(params, "position")

	var index int
	err := p.store.Update(workbookID, func(w *Workbook) error {
		sheets := w.file.GetSheetList()
		if slices.ContainsFunc(sheets, func(s string) bool { return strings.EqualFold(s, name) }) {
			return errSheetExists
		}
		if _, err := w.file.NewSheet(name); err != nil {
			return err
		}
		if hasPosition && position < len(sheets) {
			if err := w.file.MoveSheet(name, sheets[position]); err != nil {
				return err
			}
		}
		idx, err := w.file.GetSheetIndex(name)
		if err != nil {
			return err
		}
		index = idx
		return w.render()
	})
	if err != nil {
		if errors.Is(err, errSheetExists) {
			return param.Failuref("Worksheet '%s' already exists", name)
		}
		return param.Failure(workbookError(workbookID, name, "add worksheet", err))
	}

	p.Log().Info("Added worksheet", zap.String("workbook_id", workbookID), zap.String("sheet", name))
	return param.Success(map[string]interface{}{
		"status":      "success",
		"workbook_id": workbookID,
		"sheet_name":  name,
		"sheet_index": index,
	})
}

// WriteCell writes one value; numbers and booleans keep their type
func (p *Provider) WriteCell(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := writeCellSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}
	formatting, _ := param.GetMap(params, "formatting")
	if err := cellFormattingSchema.Validate(formatting); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	sheet, _ := param.GetString(params, "sheet_name")
	ref, _ := param.GetString(params, "cell")
	cell, _, _, ok := normalizeCell(ref)
	if !ok {
		return param.Failuref("Invalid cell reference: %s", ref)
	}
	value := params["value"]

	err := p.onSheet(workbookID, sheet, func(w *Workbook) error {
		if err := w.file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		return applyStyle(w.file, sheet, formatting, cell)
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, sheet, "write cell", err))
	}

	p.Log().Info("Wrote cell", zap.String("workbook_id", workbookID), zap.String("sheet", sheet), zap.String("cell", cell))
	return param.Success(map[string]interface{}{
		"status":      "success",
		"workbook_id": workbookID,
		"sheet_name":  sheet,
		"cell":        cell,
		"value":       param.Stringify(value),
	})
}

// WriteRange writes rows of values starting at start_cell. Rows may differ in
// length; the reported range spans the longest one.
func (p *Provider) WriteRange(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := writeRangeSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}
	formatting, _ := param.GetMap(params, "formatting")
	if err := cellFormattingSchema.Validate(formatting); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	sheet, _ := param.GetString(params, "sheet_name")
	ref, _ := param.GetString(params, "start_cell")
	start, col, row, ok := normalizeCell(ref)
	if !ok {
		return param.Failuref("Invalid cell reference: %s", ref)
	}
	data, ok := param.GetMatrix(params, "data")
	if !ok {
		return param.Failure("data must be an array of rows")
	}
	if len(data) == 0 {
		return param.Failure("data must contain at least one row")
	}

	width := 1
	for _, r := range data {
		width = max(width, len(r))
	}
	end, err := excelize.CoordinatesToCellName(col+width-1, row+len(data)-1)
	if err != nil {
		return param.Failuref("Range does not fit the worksheet: %v", err)
	}

	err = p.onSheet(workbookID, sheet, func(w *Workbook) error {
		var cells []string
		for i, values := range data {
			for j, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+j, row+i)
				if err != nil {
					return err
				}
				if err := w.file.SetCellValue(sheet, cell, value); err != nil {
					return err
				}
				cells = append(cells, cell)
			}
		}
		return applyStyle(w.file, sheet, formatting, cells...)
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, sheet, "write range", err))
	}

	rng := start + ":" + end
	p.Log().Info("Wrote range", zap.String("workbook_id", workbookID), zap.String("sheet", sheet), zap.String("range", rng))
	return param.Success(map[string]interface{}{
		"status":       "success",
		"workbook_id":  workbookID,
		"sheet_name":   sheet,
		"range":        rng,
		"rows_written": len(data),
	})
}

// applyStyle registers the formatting as one style and sets it on cells
func applyStyle(f *excelize.File, sheet string, formatting map[string]interface{}, cells ...string) error {
	st := cellStyle(formatting)
	if st == nil || len(cells) == 0 {
		return nil
	}
	styleID, err := f.NewStyle(st)
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}
	for _, cell := range cells {
		if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

// AddFormula sets a formula; a leading "=" is optional
func (p *Provider) AddFormula(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := formulaSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	sheet, _ := param.GetString(params, "sheet_name")
	ref, _ := param.GetString(params, "cell")
	cell, _, _, ok := normalizeCell(ref)
	if !ok {
		return param.Failuref("Invalid cell reference: %s", ref)
	}
	raw, _ := param.GetString(params, "formula")
	expr := strings.TrimPrefix(strings.TrimSpace(raw), "=")
	if expr == "" {
		return param.Failure("formula cannot be empty")
	}

	err := p.onSheet(workbookID, sheet, func(w *Workbook) error {
		return w.file.SetCellFormula(sheet, cell, expr)
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, sheet, "add formula", err))
	}

	formula := "=" + expr
	p.Log().Info("Added formula", zap.String("workbook_id", workbookID), zap.String("cell", cell), zap.String("formula", formula))
	return param.Success(map[string]interface{}{
		"status":      "success",
		"workbook_id": workbookID,
		"sheet_name":  sheet,
		"cell":        cell,
		"formula":     formula,
	})
}

// CreateChart adds a bar, line or pie chart over data_range
func (p *Provider) CreateChart(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := chartSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	sheet, _ := param.GetString(params, "sheet_name")
	chartType, _ := param.GetString(params, "chart_type")
	ct, ok := chartTypes[strings.ToLower(chartType)]
	if !ok {
		return param.Failuref("Unsupported chart type: %s", chartType)
	}

	dataRange, _ := param.GetString(params, "data_range")
	rng, ok := parseRange(dataRange)
	if !ok {
		return param.Failuref("Invalid data range: %s", dataRange)
	}
	if rng.maxRow == rng.minRow {
		return param.Failure("data_range needs a header row and at least one data row")
	}

	posRef := param.GetStringDefault(params, "position", defaultPosition)
	position, _, _, ok := normalizeCell(posRef)
	if !ok {
		return param.Failuref("Invalid cell reference: %s", posRef)
	}

	chart := &excelize.Chart{
		Type:   ct,
		Series: chartSeries(sheet, rng),
	}
	if title := param.GetStringDefault(params, "chart_title", ""); title != "" {
		chart.Title = []excelize.RichTextRun{{Text: title}}
	}

	err := p.onSheet(workbookID, sheet, func(w *Workbook) error {
		if err := w.file.AddChart(sheet, position, chart); err != nil {
			return err
		}
		w.charts++
		return nil
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, sheet, "create chart", err))
	}

	p.Log().Info("Created chart",
		zap.String("workbook_id", workbookID),
		zap.String("chart_type", chartType),
		zap.String("position", position))
	return param.Success(map[string]interface{}{
		"status":      "success",
		"workbook_id": workbookID,
		"sheet_name":  sheet,
		"chart_type":  chartType,
		"position":    position,
		"data_range":  dataRange,
	})
}

// SaveWorkbook writes xlsx natively; pdf and csv go through Excel. A path
// without an extension gets one for the requested format.
func (p *Provider) SaveWorkbook(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := saveSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	filePath, _ := param.GetString(params, "file_path")
	format := strings.ToLower(param.GetStringDefault(params, "format", "xlsx"))
	if format == "" {
		format = "xlsx"
	}
	target := paths.EnsureExt(filePath, "."+format)

	var data map[string]interface{}
	err := p.store.Update(workbookID, func(w *Workbook) error {
		res, err := p.OfficeOps.Save(ctx, common.SaveRequest{
			App:    applescript.AppExcel,
			Native: "xlsx",
			Format: format,
			Target: target,
			Source: w.FilePath,
			Write:  w.save,
		})
		if err != nil {
			return err
		}

		w.FilePath = res.Working
		data = map[string]interface{}{
			"status":      "success",
			"workbook_id": w.ID,
			"file_path":   res.Path,
			"format":      res.Format,
			"exported":    res.Exported,
		}
		if res.Warning != "" {
			data["warning"] = res.Warning
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedFormat) {
			return param.Failuref("Unsupported format: %s", format)
		}
		return param.Failure(workbookError(workbookID, "", "save workbook", err))
	}

	p.Log().Info("Saved workbook", zap.String("workbook_id", workbookID), zap.String("path", data["file_path"].(string)))
	return param.Success(data)
}

// WorkbookInfo returns metadata plus the sheet list
func (p *Provider) WorkbookInfo(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := infoSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	var data map[string]interface{}
	err := p.store.View(workbookID, func(w *Workbook) error {
		data = w.info()
		return nil
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, "", "get workbook info", err))
	}
	return param.Success(data)
}

// ListWorkbooks returns every open workbook
func (p *Provider) ListWorkbooks(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	active := p.Active()
	return param.Success(map[string]interface{}{
		"workbooks": active,
		"count":     len(active),
	})
}

// ListWorksheets returns the sheet names of a workbook in tab order
func (p *Provider) ListWorksheets(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := infoSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	workbookID, _ := param.GetString(params, "workbook_id")
	var sheets []string
	err := p.store.View(workbookID, func(w *Workbook) error {
		sheets = w.file.GetSheetList()
		return nil
	})
	if err != nil {
		return param.Failure(workbookError(workbookID, "", "list worksheets", err))
	}
	return param.Success(map[string]interface{}{
		"workbook_id": workbookID,
		"worksheets":  sheets,
		"count":       len(sheets),
	})
}
