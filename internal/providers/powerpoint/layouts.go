package powerpoint

import (
	ppt "github.com/VantageDataChat/GoPPT"
)

// Layout names in PowerPoint's default master order
const (
	LayoutTitleSlide         = "Title Slide"
	LayoutTitleAndContent    = "Title and Content"
	LayoutSectionHeader      = "Section Header"
	LayoutTwoContent         = "Two Content"
	LayoutComparison         = "Comparison"
	LayoutTitleOnly          = "Title Only"
	LayoutBlank              = "Blank"
	LayoutContentWithCaption = "Content with Caption"
	LayoutPictureWithCaption = "Picture with Caption"
)

// placeholder is a layout slot; geometry is in inches on a 10 x 7.5 slide
type placeholder struct {
	kind       ppt.PlaceholderType
	idx        int
	x, y, w, h float64
}

type layout struct {
	index        int
	placeholders []placeholder
}

var titleBar = placeholder{kind: ppt.PlaceholderTitle, x: 0.5, y: 0.3, w: 9, h: 1.25}

var layouts = map[string]layout{
	LayoutTitleSlide: {index: 0, placeholders: []placeholder{
		{kind: ppt.PlaceholderCtrTitle, x: 0.75, y: 2.33, w: 8.5, h: 1.6},
		{kind: ppt.PlaceholderSubTitle, idx: 1, x: 1.5, y: 4.25, w: 7, h: 1.75},
	}},
	LayoutTitleAndContent: {index: 1, placeholders: []placeholder{
		titleBar,
		{kind: ppt.PlaceholderBody, idx: 1, x: 0.5, y: 1.75, w: 9, h: 4.95},
	}},
	LayoutSectionHeader: {index: 2, placeholders: []placeholder{
		{kind: ppt.PlaceholderTitle, x: 0.79, y: 4.82, w: 8.5, h: 1.49},
		{kind: ppt.PlaceholderBody, idx: 1, x: 0.79, y: 3.18, w: 8.5, h: 1.64},
	}},
	LayoutTwoContent: {index: 3, placeholders: []placeholder{
		titleBar,
		{kind: ppt.PlaceholderBody, idx: 1, x: 0.5, y: 1.75, w: 4.4, h: 4.95},
		{kind: ppt.PlaceholderBody, idx: 2, x: 5.1, y: 1.75, w: 4.4, h: 4.95},
	}},
	LayoutComparison: {index: 4, placeholders: []placeholder{
		titleBar,
		{kind: ppt.PlaceholderBody, idx: 1, x: 0.5, y: 1.68, w: 4.42, h: 0.7},
		{kind: ppt.PlaceholderBody, idx: 2, x: 0.5, y: 2.38, w: 4.42, h: 4.32},
		{kind: ppt.PlaceholderBody, idx: 3, x: 5.08, y: 1.68, w: 4.42, h: 0.7},
		{kind: ppt.PlaceholderBody, idx: 4, x: 5.08, y: 2.38, w: 4.42, h: 4.32},
	}},
	LayoutTitleOnly: {index: 5, placeholders: []placeholder{
		titleBar,
	}},
	LayoutBlank: {index: 6},
	LayoutContentWithCaption: {index: 7, placeholders: []placeholder{
		{kind: ppt.PlaceholderTitle, x: 0.5, y: 0.3, w: 3.3, h: 1.27},
		{kind: ppt.PlaceholderBody, idx: 1, x: 3.9, y: 0.3, w: 5.6, h: 6.4},
		{kind: ppt.PlaceholderBody, idx: 2, x: 0.5, y: 1.57, w: 3.3, h: 5.1},
	}},
	LayoutPictureWithCaption: {index: 8, placeholders: []placeholder{
		{kind: ppt.PlaceholderTitle, x: 1.96, y: 5.25, w: 6, h: 0.62},
		{kind: ppt.PlaceholderBody, idx: 2, x: 1.96, y: 5.87, w: 6, h: 0.88},
	}},
}

// LayoutNames returns the supported layouts ordered by master index
func LayoutNames() []string {
	names := make([]string, len(layouts))
	for name, l := range layouts {
		names[l.index] = name
	}
	return names
}

// resolveLayout maps unknown names to Title and Content
func resolveLayout(name string) (string, layout) {
	if l, ok := layouts[name]; ok {
		return name, l
	}
	return LayoutTitleAndContent, layouts[LayoutTitleAndContent]
}

// applyLayout names the slide after the layout and adds its placeholders
func applyLayout(slide *ppt.Slide, name string) string {
	resolved, l := resolveLayout(name)
	slide.SetName(resolved)
	for _, p := range l.placeholders {
		ph := slide.CreatePlaceholderShape(p.kind)
		ph.SetPlaceholderIndex(p.idx)
		ph.SetPosition(ppt.Inch(p.x), ppt.Inch(p.y))
		ph.SetSize(ppt.Inch(p.w), ppt.Inch(p.h))
	}
	return resolved
}

// titlePlaceholder returns the title slot, centered or regular
func titlePlaceholder(slide *ppt.Slide) *ppt.PlaceholderShape {
	if ph := slide.GetPlaceholder(ppt.PlaceholderTitle); ph != nil {
		return ph
	}
	return slide.GetPlaceholder(ppt.PlaceholderCtrTitle)
}

// bodyPlaceholder returns the first content slot, falling back to the subtitle
func bodyPlaceholder(slide *ppt.Slide) *ppt.PlaceholderShape {
	if ph := slide.GetPlaceholder(ppt.PlaceholderBody); ph != nil {
		return ph
	}
	return slide.GetPlaceholder(ppt.PlaceholderSubTitle)
}
