package word

import (
	"strings"
	"time"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"

	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
)

// Element kinds
const (
	KindHeading   = "heading"
	KindParagraph = "paragraph"
	KindList      = "list"
	KindTable     = "table"
)

// List styles registered in every rendered document
const (
	ListBullet = "List Bullet"
	ListNumber = "List Number"
)

const tableWidth = 9000 // twips, 6.25in

// Element is one block of document content
type Element struct {
	ID         string
	Kind       string
	Text       string
	Level      int
	Style      string
	Formatting map[string]interface{}
	Items      []string
	ListType   string
	Rows       int
	Columns    int
	Data       [][]string
	CreatedAt  time.Time
}

// Document is an open Word document. Content is kept as an element list and
// rendered into a fresh GoWord document on every change.
type Document struct {
	ID                   string
	Title                string
	FilePath             string
	Template             string
	AppleScriptAvailable bool
	CreatedAt            time.Time

	baseParagraphs int
	elements       []*Element
}

// build renders the element list on top of the template or an empty document
func (d *Document) build() (*goword.Document, error) {
	var doc *goword.Document
	if d.Template != "" {
		var err error
		if doc, err = goword.Open(d.Template); err != nil {
			return nil, err
		}
	} else {
		doc = goword.New()
	}

	doc.Properties.Title = d.Title
	doc.Properties.Creator = "Office MCP"
	registerListStyles(doc)

	var sec *goword.Section
	if n := len(doc.Sections); n > 0 {
		sec = doc.Sections[n-1]
	} else {
		sec = doc.AddSection()
	}

	for _, el := range d.elements {
		renderElement(doc, sec, el)
	}
	return doc, nil
}

func (d *Document) render() error {
	return d.save(d.FilePath)
}

func (d *Document) save(path string) error {
	doc, err := d.build()
	if err != nil {
		return err
	}
	return doc.Save(path)
}

// paragraphCount counts template paragraphs plus every rendered paragraph,
// one per list item; tables do not count
func (d *Document) paragraphCount() int {
	n := d.baseParagraphs
	for _, el := range d.elements {
		switch el.Kind {
		case KindHeading, KindParagraph:
			n++
		case KindList:
			n += len(el.Items)
		}
	}
	return n
}

func (d *Document) metadata() map[string]interface{} {
	return map[string]interface{}{
		"document_id":           d.ID,
		"title":                 d.Title,
		"file_path":             d.FilePath,
		"paragraph_count":       d.paragraphCount(),
		"element_count":         len(d.elements),
		"applescript_available": d.AppleScriptAvailable,
		"created_at":            d.CreatedAt,
	}
}

func (d *Document) info() map[string]interface{} {
	data := d.metadata()
	elements := make([]map[string]interface{}, 0, len(d.elements))
	for _, el := range d.elements {
		elements = append(elements, el.data(d.ID))
	}
	data["elements"] = elements
	return data
}

func (el *Element) data(docID string) map[string]interface{} {
	out := map[string]interface{}{
		"element_id":  el.ID,
		"document_id": docID,
		"type":        el.Kind,
		"style":       el.Style,
		"created_at":  el.CreatedAt,
	}
	switch el.Kind {
	case KindHeading:
		out["text"] = el.Text
		out["level"] = el.Level
	case KindParagraph:
		out["text"] = el.Text
		out["formatting"] = el.Formatting
	case KindList:
		out["items"] = el.Items
		out["list_type"] = el.ListType
		out["item_count"] = len(el.Items)
	case KindTable:
		out["rows"] = el.Rows
		out["columns"] = el.Columns
		out["has_data"] = len(el.Data) > 0
	}
	return out
}

func registerListStyles(doc *goword.Document) {
	if _, ok := doc.GetNumberingStyle(ListBullet); !ok {
		doc.AddNumberingStyle(ListBullet, goword.NumberingStyle{
			Type:   "singleLevel",
			Levels: []goword.NumberingLevel{{Format: "bullet", Text: "•", Left: 720, Hanging: 360}},
		})
	}
	if _, ok := doc.GetNumberingStyle(ListNumber); !ok {
		doc.AddNumberingStyle(ListNumber, goword.NumberingStyle{
			Type:   "singleLevel",
			Levels: []goword.NumberingLevel{{Format: "decimal", Text: "%1.", Left: 720, Hanging: 360}},
		})
	}
}

func renderElement(doc *goword.Document, sec *goword.Section, el *Element) {
	switch el.Kind {
	case KindHeading:
		p := sec.AddTitle(el.Text, el.Level)
		if _, ok := doc.GetParagraphStyle(el.Style); el.Style != "" && ok {
			p.StyleName = el.Style
		}

	case KindParagraph:
		font, para := textStyles(el.Formatting)
		p := sec.AddText(el.Text, font, para)
		if _, ok := doc.GetParagraphStyle(el.Style); el.Style != "" && ok {
			p.StyleName = el.Style
		}

	case KindList:
		listStyle := el.Style
		if _, ok := doc.GetNumberingStyle(listStyle); !ok {
			listStyle = ListBullet
			if el.ListType == "number" {
				listStyle = ListNumber
			}
		}
		for _, item := range el.Items {
			sec.AddListItem(item, 0, nil, listStyle, nil)
		}

	case KindTable:
		renderTable(doc, sec, el)
	}
}

func renderTable(doc *goword.Document, sec *goword.Section, el *Element) {
	var tbl *goword.Table
	if _, ok := doc.GetTableStyle(el.Style); el.Style != "" && ok {
		tbl = sec.AddTableWithStyle(el.Style)
	} else {
		ts := &style.TableStyle{Width: tableWidth, WidthType: "dxa"}
		ts.SetAllBorders("single", 4, "000000")
		tbl = sec.AddTable(ts)
	}

	width := tableWidth / el.Columns
	tbl.Grid = make([]int, el.Columns)
	for c := range tbl.Grid {
		tbl.Grid[c] = width
	}

	header := len(el.Data) > 0
	for r := 0; r < el.Rows; r++ {
		var rowStyle *style.RowStyle
		var cellStyle *style.CellStyle
		var font *style.FontStyle
		if r == 0 && header {
			rowStyle = &style.RowStyle{IsHeader: true}
			cellStyle = &style.CellStyle{Width: width, Shading: &style.Shading{Fill: "D9E2F3", Pattern: "clear"}}
			font = &style.FontStyle{Bold: true}
		}
		row := tbl.AddRow(0, rowStyle)
		for c := 0; c < el.Columns; c++ {
			text := ""
			if r < len(el.Data) && c < len(el.Data[r]) {
				text = el.Data[r][c]
			}
			row.AddCell(width, cellStyle).AddText(text, font, nil)
		}
	}
}

// textStyles converts tool formatting to GoWord run and paragraph styles
func textStyles(formatting map[string]interface{}) (*style.FontStyle, *style.ParagraphStyle) {
	if len(formatting) == 0 {
		return nil, nil
	}

	font := &style.FontStyle{}
	if size, ok := param.GetNumber(formatting, "font_size"); ok {
		font.Size = size
	}
	if name, ok := formatting["font_name"].(string); ok {
		font.Name = name
	}
	if bold, ok := formatting["bold"].(bool); ok {
		font.Bold = bold
	}
	if italic, ok := formatting["italic"].(bool); ok {
		font.Italic = italic
	}
	if color, ok := formatting["color"].(string); ok {
		font.Color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	}

	var para *style.ParagraphStyle
	if align, ok := formatting["alignment"].(string); ok {
		if align == "justify" {
			align = style.AlignBoth
		}
		para = &style.ParagraphStyle{Alignment: align, WidowControl: true}
	}
	return font, para
}
