package powerpoint

import (
	"context"
	"errors"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/office-mcp/internal/integration/fetch"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

var alignments = map[string]ppt.HorizontalAlignment{
	"left":    ppt.HorizontalLeft,
	"center":  ppt.HorizontalCenter,
	"right":   ppt.HorizontalRight,
	"justify": ppt.HorizontalJustify,
}

// AddText writes text into a placeholder, or a new text box when the
// layout has no matching slot
func (p *Provider) AddText(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := addTextSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}
	formatting, _ := param.GetMap(params, "formatting")
	if err := common.TextFormattingSchema.Validate(formatting); err != nil {
		return param.Failure(err.Error())
	}

	slideID, _ := param.GetString(params, "slide_id")
	text, _ := param.GetString(params, "text")
	target := param.GetStringDefault(params, "placeholder", "content")

	err := p.withSlide(slideID, func(pres *Presentation, s *Slide) error {
		var ph *ppt.PlaceholderShape
		switch target {
		case "title":
			ph = titlePlaceholder(s.slide)
		case "content":
			ph = bodyPlaceholder(s.slide)
		case "subtitle":
			ph = s.slide.GetPlaceholder(ppt.PlaceholderSubTitle)
		}

		if ph != nil {
			setPlaceholderText(ph, text, formatting)
		} else {
			box := s.slide.CreateRichTextShape()
			box.SetPosition(ppt.Inch(1), ppt.Inch(1.5))
			box.SetSize(ppt.Inch(8), ppt.Inch(5))
			writeLines(box, text, formatting)
		}
		return pres.render()
	})
	if err != nil {
		return param.Failure(err.Error())
	}

	p.Log().Info("Added text to slide", zap.String("slide_id", slideID), zap.String("placeholder", target))
	return param.Success(map[string]interface{}{
		"status":      "success",
		"slide_id":    slideID,
		"text_length": len([]rune(text)),
		"placeholder": target,
	})
}

// AddImage places an image at position with size, both in points
func (p *Provider) AddImage(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := addImageSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	position, ok := param.GetMap(params, "position")
	if !ok {
		position = map[string]interface{}{"x": 100.0, "y": 100.0}
	}
	size, ok := param.GetMap(params, "size")
	if !ok {
		size = map[string]interface{}{"width": 400.0, "height": 300.0}
	}
	if err := positionSchema.Validate(position); err != nil {
		return param.Failure(err.Error())
	}
	if err := sizeSchema.Validate(size); err != nil {
		return param.Failure(err.Error())
	}

	slideID, _ := param.GetString(params, "slide_id")
	source, _ := param.GetString(params, "image_source")

	// fail fast before any download
	if _, ok := p.owners.Load(slideID); !ok {
		return param.Failuref("Slide %s not found", slideID)
	}

	img, err := p.images.Load(ctx, source)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return param.Failuref("Image file not found: %s", source)
		}
		return param.Failuref("Failed to load image: %v", err)
	}

	x := numberOr(position, "x", 100)
	y := numberOr(position, "y", 100)
	width := numberOr(size, "width", 400)
	height := numberOr(size, "height", 300)

	err = p.withSlide(slideID, func(pres *Presentation, s *Slide) error {
		shape := s.slide.AddImageData(img.Data, img.MIMEType)
		shape.SetDescription(source)
		shape.SetPosition(ppt.Point(x), ppt.Point(y))
		shape.SetSize(ppt.Point(width), ppt.Point(height))
		return pres.render()
	})
	if err != nil {
		return param.Failure(err.Error())
	}

	p.Log().Info("Added image to slide",
		zap.String("slide_id", slideID),
		zap.String("mime_type", img.MIMEType),
		zap.Int("bytes", len(img.Data)))
	return param.Success(map[string]interface{}{
		"status":       "success",
		"slide_id":     slideID,
		"image_source": source,
		"position":     map[string]interface{}{"x": x, "y": y},
		"size":         map[string]interface{}{"width": width, "height": height},
	})
}

// AddSpeakerNotes replaces the slide's notes
func (p *Provider) AddSpeakerNotes(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	if err := notesSchema.Validate(params); err != nil {
		return param.Failure(err.Error())
	}

	slideID, _ := param.GetString(params, "slide_id")
	notes, _ := param.GetString(params, "notes")

	err := p.withSlide(slideID, func(pres *Presentation, s *Slide) error {
		s.slide.SetNotes(notes)
		return pres.render()
	})
	if err != nil {
		return param.Failure(err.Error())
	}

	p.Log().Info("Added speaker notes", zap.String("slide_id", slideID))
	return param.Success(map[string]interface{}{
		"status":       "success",
		"slide_id":     slideID,
		"notes_length": len([]rune(notes)),
	})
}

func setPlaceholderText(ph *ppt.PlaceholderShape, text string, formatting map[string]interface{}) {
	if ph == nil {
		return
	}
	ph.ClearAll()
	writeLines(&ph.RichTextShape, text, formatting)
}

// writeLines puts one paragraph per line into shape
func writeLines(shape *ppt.RichTextShape, text string, formatting map[string]interface{}) {
	for i, line := range strings.Split(text, "\n") {
		para := shape.GetActiveParagraph()
		if i > 0 {
			para = shape.CreateParagraph()
		}
		run := para.CreateTextRun(line)
		applyRunFormatting(run.GetFont(), formatting)
		if align, ok := param.GetString(formatting, "alignment"); ok {
			if h, ok := alignments[align]; ok {
				para.GetAlignment().SetHorizontal(h)
			}
		}
	}
}

func applyRunFormatting(font *ppt.Font, formatting map[string]interface{}) {
	if len(formatting) == 0 {
		return
	}
	if size, ok := param.GetInt(formatting, "font_size"); ok {
		font.SetSize(size)
	}
	if name, ok := param.GetString(formatting, "font_name"); ok && name != "" {
		font.SetName(name)
	}
	if bold, ok := formatting["bold"].(bool); ok {
		font.SetBold(bold)
	}
	if italic, ok := formatting["italic"].(bool); ok {
		font.SetItalic(italic)
	}
	if color, ok := param.GetString(formatting, "color"); ok && color != "" {
		font.SetColor(ppt.NewColor(color))
	}
}

func titleFormatting(theme string) map[string]interface{} {
	accent, ok := themeAccents[theme]
	if !ok {
		return nil
	}
	return map[string]interface{}{"color": accent, "bold": true}
}

func numberOr(m map[string]interface{}, key string, def float64) float64 {
	if f, ok := param.GetNumber(m, key); ok {
		return f
	}
	return def
}
