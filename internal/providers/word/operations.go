package word

import (
	"context"
	"errors"

	goword "github.com/VantageDataChat/GoWord"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

// CreateDocument starts a document, optionally from a template
func (p *Provider) CreateDocument(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := createSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	title := param.GetStringDefault(params, "title", defaultTitle)
	now := p.Timestamp()
	d := &Document{
		ID:        string(id.NewHandle()),
		Title:     title,
		CreatedAt: now,
	}

	if templatePath, ok := param.GetString(params, "template_path"); ok && templatePath != "" {
		resolved, err := validation.ValidateFilePath(templatePath, true, paths.ExtDOCX, paths.ExtDOTX)
		if err != nil {
			return param.Failure(err.Error())
		}
		base, err := goword.Open(resolved)
		if err != nil {
			return param.Failuref("Failed to open template: %v", err)
		}
		d.Template = resolved
		d.baseParagraphs = len(base.Paragraphs())
	}

	if title != defaultTitle {
		d.elements = append(d.elements, &Element{
			ID:        string(id.NewElementID()),
			Kind:      KindHeading,
			Text:      title,
			Level:     1,
			CreatedAt: now,
		})
	}

	d.FilePath = p.Workspace.Path(d.ID, extension)
	if err := d.render(); err != nil {
		return param.Failuref("Failed to create document: %v", err)
	}
	if err := p.store.Add(d.ID, d); err != nil {
		_ = p.Workspace.Remove(d.ID, extension)
		return param.Failure(err.Error())
	}

	opened := p.OpenInApp(ctx, applescript.AppWord, d.FilePath)

	var data map[string]interface{}
	_ = p.store.Update(d.ID, func(d *Document) error {
		d.AppleScriptAvailable = opened
		data = d.metadata()
		return nil
	})

	p.Log().Info("Created document", zap.String("document_id", d.ID), zap.String("title", title))
	return param.Success(data)
}

// AddHeading appends a heading; levels are clamped to 1..6
func (p *Provider) AddHeading(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := headingSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	text, _ := param.GetString(params, "text")
	level := min(max(param.GetIntDefault(params, "level", 1), 1), 6)

	data, err := p.addElement(docID, &Element{
		ID:        string(id.NewElementID()),
		Kind:      KindHeading,
		Text:      text,
		Level:     level,
		Style:     param.GetStringDefault(params, "style", ""),
		CreatedAt: p.Timestamp(),
	})
	if err != nil {
		return param.Failure(documentError(docID, "add heading", err))
	}

	p.Log().Info("Added heading", zap.String("document_id", docID), zap.Int("level", level))
	return param.Success(data)
}

// AddParagraph appends a paragraph with optional run and alignment formatting
func (p *Provider) AddParagraph(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := paragraphSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}
	formatting, _ := param.GetMap(params, "formatting")
	if err := common.TextFormattingSchema.Validate(formatting); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	text, _ := param.GetString(params, "text")

	data, err := p.addElement(docID, &Element{
		ID:         string(id.NewElementID()),
		Kind:       KindParagraph,
		Text:       text,
		Style:      param.GetStringDefault(params, "style", ""),
		Formatting: formatting,
		CreatedAt:  p.Timestamp(),
	})
	if err != nil {
		return param.Failure(documentError(docID, "add paragraph", err))
	}

	p.Log().Info("Added paragraph", zap.String("document_id", docID))
	return param.Success(data)
}

// AddList appends one list paragraph per item
func (p *Provider) AddList(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := listSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	raw, _ := param.GetArray(params, "items")
	if len(raw) == 0 {
		return param.Failure("items must contain at least one entry")
	}
	items := make([]string, len(raw))
	for i, item := range raw {
		items[i] = param.Stringify(item)
	}

	listType := param.GetStringDefault(params, "list_type", "bullet")
	listStyle := param.GetStringDefault(params, "style", "")
	if listStyle == "" {
		listStyle = ListBullet
		if listType == "number" {
			listStyle = ListNumber
		}
	}

	data, err := p.addElement(docID, &Element{
		ID:        string(id.NewElementID()),
		Kind:      KindList,
		Items:     items,
		ListType:  listType,
		Style:     listStyle,
		CreatedAt: p.Timestamp(),
	})
	if err != nil {
		return param.Failure(documentError(docID, "add list", err))
	}

	p.Log().Info("Added list", zap.String("document_id", docID), zap.Int("items", len(items)))
	return param.Success(data)
}

// AddTable appends a rows x columns table; data beyond that size is dropped
func (p *Provider) AddTable(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := tableSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	rows, _ := param.GetInt(params, "rows")
	columns, _ := param.GetInt(params, "columns")

	var cells [][]string
	if _, present := params["data"]; present {
		matrix, ok := param.GetMatrix(params, "data")
		if !ok {
			return param.Failure("data must be an array of rows")
		}
		cells = clip(matrix, rows, columns)
	}

	data, err := p.addElement(docID, &Element{
		ID:        string(id.NewElementID()),
		Kind:      KindTable,
		Rows:      rows,
		Columns:   columns,
		Data:      cells,
		Style:     param.GetStringDefault(params, "style", ""),
		CreatedAt: p.Timestamp(),
	})
	if err != nil {
		return param.Failure(documentError(docID, "add table", err))
	}

	p.Log().Info("Added table", zap.String("document_id", docID), zap.Int("rows", rows), zap.Int("columns", columns))
	return param.Success(data)
}

// SaveDocument writes docx natively; pdf, doc, rtf and txt go through Word
func (p *Provider) SaveDocument(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := saveSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	filePath, _ := param.GetString(params, "file_path")
	format := param.GetStringDefault(params, "format", "docx")

	var data map[string]interface{}
	err := p.store.Update(docID, func(d *Document) error {
		res, err := p.OfficeOps.Save(ctx, common.SaveRequest{
			App:    applescript.AppWord,
			Native: "docx",
			Format: format,
			Target: filePath,
			Source: d.FilePath,
			Write:  d.save,
		})
		if err != nil {
			return err
		}

		d.FilePath = res.Working
		data = map[string]interface{}{
			"status":      "success",
			"document_id": d.ID,
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
		return param.Failure(documentError(docID, "save document", err))
	}

	p.Log().Info("Saved document", zap.String("document_id", docID), zap.String("path", data["file_path"].(string)))
	return param.Success(data)
}

// DocumentInfo returns metadata plus the element list
func (p *Provider) DocumentInfo(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := infoSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	docID, _ := param.GetString(params, "document_id")
	var data map[string]interface{}
	err := p.store.View(docID, func(d *Document) error {
		data = d.info()
		return nil
	})
	if err != nil {
		return param.Failure(documentError(docID, "get document info", err))
	}
	return param.Success(data)
}

// ListDocuments returns every open document
func (p *Provider) ListDocuments(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	active := p.Active()
	return param.Success(map[string]interface{}{
		"documents": active,
		"count":     len(active),
	})
}

func clip(matrix [][]interface{}, rows, columns int) [][]string {
	out := make([][]string, 0, min(len(matrix), rows))
	for r, row := range matrix {
		if r >= rows {
			break
		}
		cells := make([]string, 0, min(len(row), columns))
		for c, cell := range row {
			if c >= columns {
				break
			}
			cells = append(cells, param.Stringify(cell))
		}
		out = append(out, cells)
	}
	return out
}
