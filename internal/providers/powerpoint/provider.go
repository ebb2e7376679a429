package powerpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/office-mcp/internal/integration/fetch"
	"github.com/GriffinCanCode/office-mcp/internal/providers/common"
	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/workspace"
)

const (
	serviceID = "powerpoint"
	kind      = "presentation"
	extension = ".pptx"
)

// ImageLoader resolves an image source to bytes
type ImageLoader interface {
	Load(ctx context.Context, source string) (*fetch.Image, error)
}

// Provider implements the PowerPoint tools on top of GoPPT
type Provider struct {
	*common.OfficeOps
	store  *workspace.Store[*Presentation]
	owners sync.Map // slide ID -> presentation ID
	images ImageLoader
}

// NewProvider creates a PowerPoint provider holding at most limit decks
func NewProvider(ops *common.OfficeOps, images ImageLoader, limit int) *Provider {
	return &Provider{
		OfficeOps: ops,
		store:     workspace.NewStore[*Presentation](kind, limit, ops.Gauge),
		images:    images,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          serviceID,
		Name:        "PowerPoint Service",
		Description: "Create and edit PowerPoint presentations: slides, text, images and speaker notes",
		Category:    types.CategoryPresentation,
		Capabilities: []string{
			"create",
			"slides",
			"text",
			"images",
			"notes",
			"export",
		},
		Tools: tools(),
		DataModels: []types.DataModel{
			{
				Name: "Presentation",
				Fields: map[string]string{
					"presentation_id":       "string",
					"title":                 "string",
					"theme":                 "string",
					"file_path":             "string",
					"slide_count":           "number",
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
	case "powerpoint.create_presentation":
		return p.CreatePresentation(ctx, params)
	case "powerpoint.add_slide":
		return p.AddSlide(ctx, params)
	case "powerpoint.add_text_to_slide":
		return p.AddText(ctx, params)
	case "powerpoint.add_image_to_slide":
		return p.AddImage(ctx, params)
	case "powerpoint.add_speaker_notes":
		return p.AddSpeakerNotes(ctx, params)
	case "powerpoint.save_presentation":
		return p.SavePresentation(ctx, params)
	case "powerpoint.get_presentation_info":
		return p.PresentationInfo(ctx, params)
	case "powerpoint.list_presentations":
		return p.ListPresentations(ctx, params)
	default:
		return param.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// Active returns metadata for every open presentation in creation order
func (p *Provider) Active() []map[string]interface{} {
	decks := p.store.List()
	out := make([]map[string]interface{}, 0, len(decks))
	for _, pres := range decks {
		_ = p.store.View(pres.ID, func(pres *Presentation) error {
			out = append(out, pres.metadata())
			return nil
		})
	}
	return out
}

// Count returns the number of open presentations
func (p *Provider) Count() int {
	return p.store.Len()
}

// withSlide runs fn on the slide and its deck under the store lock
func (p *Provider) withSlide(slideID string, fn func(*Presentation, *Slide) error) error {
	owner, ok := p.owners.Load(slideID)
	if !ok {
		return fmt.Errorf("Slide %s not found", slideID)
	}
	return p.store.Update(owner.(string), func(pres *Presentation) error {
		s := pres.findSlide(slideID)
		if s == nil {
			return fmt.Errorf("Slide %s not found", slideID)
		}
		return fn(pres, s)
	})
}
