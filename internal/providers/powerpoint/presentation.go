package powerpoint

import (
	"time"

	ppt "github.com/VantageDataChat/GoPPT"
)

// Slide is a registered slide inside a Presentation
type Slide struct {
	ID        string
	Layout    string
	CreatedAt time.Time
	slide     *ppt.Slide
}

// Presentation is an open deck with its working file
type Presentation struct {
	ID                   string
	Title                string
	Theme                string
	FilePath             string
	AppleScriptAvailable bool
	CreatedAt            time.Time

	doc    *ppt.Presentation
	slides []*Slide
}

// slideIndex returns the slide's current position in the deck
func (p *Presentation) slideIndex(s *Slide) int {
	for i, candidate := range p.doc.GetAllSlides() {
		if candidate == s.slide {
			return i
		}
	}
	return -1
}

func (p *Presentation) findSlide(id string) *Slide {
	for _, s := range p.slides {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (p *Presentation) metadata() map[string]interface{} {
	return map[string]interface{}{
		"presentation_id":       p.ID,
		"title":                 p.Title,
		"theme":                 p.Theme,
		"file_path":             p.FilePath,
		"slide_count":           p.doc.GetSlideCount(),
		"applescript_available": p.AppleScriptAvailable,
		"created_at":            p.CreatedAt,
	}
}

func (p *Presentation) slideData(s *Slide) map[string]interface{} {
	return map[string]interface{}{
		"slide_id":        s.ID,
		"presentation_id": p.ID,
		"layout":          s.Layout,
		"index":           p.slideIndex(s),
		"created_at":      s.CreatedAt,
	}
}

func (p *Presentation) info() map[string]interface{} {
	data := p.metadata()
	slides := make([]map[string]interface{}, 0, len(p.slides))
	for _, s := range p.slides {
		slides = append(slides, p.slideData(s))
	}
	data["slides"] = slides
	return data
}

func (p *Presentation) render() error {
	return p.doc.Save(p.FilePath)
}
