package powerpoint

import (
	"context"
	"errors"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/applescript"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	"github.com/GriffinCanCode/office-mcp/internal/shared/id"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
	"github.com/GriffinCanCode/office-mcp/internal/workspace"
)

// CreatePresentation starts a deck with a title slide
func (p *Provider) CreatePresentation(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := createSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	title, _ := param.GetString(params, "title")
	theme := param.GetStringDefault(params, "theme", ThemeDefault)

	var doc *ppt.Presentation
	if templatePath, ok := param.GetString(params, "template_path"); ok && templatePath != "" {
		resolved, err := validation.ValidateFilePath(templatePath, true, paths.ExtPPTX, paths.ExtPOTX)
		if err != nil {
			return param.Failure(err.Error())
		}
		doc, err = ppt.OpenTemplate(resolved)
		if err != nil {
			return param.Failuref("Failed to open template: %v", err)
		}
	} else {
		doc = ppt.New()
	}

	// ppt.New starts with one blank slide; templates start empty
	var first *ppt.Slide
	if doc.GetSlideCount() > 0 {
		first, _ = doc.GetSlide(0)
	} else {
		first = doc.CreateSlide()
	}
	applyLayout(first, LayoutTitleSlide)
	setPlaceholderText(titlePlaceholder(first), title, titleFormatting(theme))

	props := doc.GetDocumentProperties()
	props.Title = title
	props.Creator = "Office MCP"
	props.LastModifiedBy = "Office MCP"

	now := p.Timestamp()
	pres := &Presentation{
		ID:        string(id.NewHandle()),
		Title:     title,
		Theme:     theme,
		CreatedAt: now,
		doc:       doc,
	}
	pres.FilePath = p.Workspace.Path(pres.ID, extension)
	titleSlide := &Slide{ID: string(id.NewSlideID()), Layout: LayoutTitleSlide, CreatedAt: now, slide: first}
	pres.slides = append(pres.slides, titleSlide)

	if err := pres.render(); err != nil {
		return param.Failuref("Failed to create presentation: %v", err)
	}
	if err := p.store.Add(pres.ID, pres); err != nil {
		_ = p.Workspace.Remove(pres.ID, extension)
		return param.Failure(err.Error())
	}
	p.owners.Store(titleSlide.ID, pres.ID)

	opened := p.OpenInApp(ctx, applescript.AppPowerPoint, pres.FilePath)

	var data map[string]interface{}
	_ = p.store.Update(pres.ID, func(pres *Presentation) error {
		pres.AppleScriptAvailable = opened
		data = pres.metadata()
		return nil
	})
	data["title_slide_id"] = titleSlide.ID

	p.Log().Info("Created presentation",
		zap.String("presentation_id", pres.ID),
		zap.String("title", title))
	return param.Success(data)
}

// AddSlide appends a slide, or inserts it at position
func (p *Provider) AddSlide(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := addSlideSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	presID, _ := param.GetString(params, "presentation_id")
	layoutName := param.GetStringDefault(params, "layout", LayoutTitleAndContent)
	position, hasPosition := param.GetInt(params, "position")

	var data map[string]interface{}
	err := p.store.Update(presID, func(pres *Presentation) error {
		slide := pres.doc.CreateSlide()
		s := &Slide{
			ID:        string(id.NewSlideID()),
			Layout:    applyLayout(slide, layoutName),
			CreatedAt: p.Timestamp(),
			slide:     slide,
		}

		at := pres.doc.GetSlideCount() - 1
		if hasPosition && position < at {
			if err := pres.doc.MoveSlide(at, position); err != nil {
				_ = pres.doc.RemoveSlideByIndex(at)
				return err
			}
			at = position
		}

		pres.slides = append(pres.slides, s)
		if err := pres.render(); err != nil {
			// keep the deck and the slide index in step
			pres.slides = pres.slides[:len(pres.slides)-1]
			_ = pres.doc.RemoveSlideByIndex(at)
			return err
		}
		p.owners.Store(s.ID, pres.ID)
		data = pres.slideData(s)
		return nil
	})
	if err != nil {
		return param.Failure(presentationError(presID, "add slide", err))
	}

	p.Log().Info("Added slide", zap.String("presentation_id", presID), zap.String("slide_id", data["slide_id"].(string)))
	return param.Success(data)
}

// SavePresentation writes the deck to file_path as pptx, or exports it
// through PowerPoint for pdf and ppt
func (p *Provider) SavePresentation(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := saveSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	presID, _ := param.GetString(params, "presentation_id")
	filePath, _ := param.GetString(params, "file_path")
	format := param.GetStringDefault(params, "format", "pptx")

	var data map[string]interface{}
	err := p.store.Update(presID, func(pres *Presentation) error {
		res, err := p.OfficeOps.Save(ctx, common.SaveRequest{
			App:    applescript.AppPowerPoint,
			Native: "pptx",
			Format: format,
			Target: filePath,
			Source: pres.FilePath,
			Write:  pres.doc.Save,
		})
		if err != nil {
			return err
		}

		pres.FilePath = res.Working
		data = map[string]interface{}{
			"status":          "success",
			"presentation_id": pres.ID,
			"file_path":       res.Path,
			"format":          res.Format,
			"exported":        res.Exported,
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
		return param.Failure(presentationError(presID, "save presentation", err))
	}

	p.Log().Info("Saved presentation", zap.String("presentation_id", presID), zap.String("path", data["file_path"].(string)))
	return param.Success(data)
}

// PresentationInfo returns metadata plus the registered slides
func (p *Provider) PresentationInfo(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := infoSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	presID, _ := param.GetString(params, "presentation_id")
	var data map[string]interface{}
	err := p.store.View(presID, func(pres *Presentation) error {
		data = pres.info()
		return nil
	})
	if err != nil {
		return param.Failure(presentationError(presID, "get presentation info", err))
	}
	return param.Success(data)
}

// ListPresentations returns every open deck
func (p *Provider) ListPresentations(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	active := p.Active()
	return param.Success(map[string]interface{}{
		"presentations": active,
		"count":         len(active),
	})
}

func presentationError(presID, action string, err error) string {
	if errors.Is(err, workspace.ErrNotFound) {
		return fmt.Sprintf("Presentation %s not found", presID)
	}
	return fmt.Sprintf("Failed to %s: %v", action, err)
}
