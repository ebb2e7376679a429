package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	param "github.com/GriffinCanCode/office-mcp/internal/shared/params"
)

// chartTypes maps tool chart names onto excelize types; "bar" means
// vertical bars, which excelize calls a column chart
var chartTypes = map[string]excelize.ChartType{
	"bar":  excelize.Col,
	"line": excelize.Line,
	"pie":  excelize.Pie,
}

func chartTypeNames() []string {
	return []string{"bar", "line", "pie"}
}

// normalizeCell validates a reference like "b2" and returns "B2" with its
// 1-based coordinates
func normalizeCell(ref string) (string, int, int, bool) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return "", 0, 0, false
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", 0, 0, false
	}
	return name, col, row, true
}

// cellRange is an inclusive block of cells, 1-based
type cellRange struct {
	minCol, minRow, maxCol, maxRow int
}

func parseRange(ref string) (cellRange, bool) {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		return cellRange{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return cellRange{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return cellRange{}, false
	}
	return cellRange{
		minCol: min(c1, c2), minRow: min(r1, r2),
		maxCol: max(c1, c2), maxRow: max(r1, r2),
	}, true
}

// absolute renders a sheet-qualified absolute reference, e.g. 'Data'!$B$2:$B$9
func absolute(sheet string, col, fromRow, toRow int) string {
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	start, _ := excelize.CoordinatesToCellName(col, fromRow, true)
	if fromRow == toRow {
		return quoted + "!" + start
	}
	end, _ := excelize.CoordinatesToCellName(col, toRow, true)
	return quoted + "!" + start + ":" + end
}

// chartSeries turns every column of r into a series whose name is the
// column's first cell
func chartSeries(sheet string, r cellRange) []excelize.ChartSeries {
	series := make([]excelize.ChartSeries, 0, r.maxCol-r.minCol+1)
	for col := r.minCol; col <= r.maxCol; col++ {
		series = append(series, excelize.ChartSeries{
			Name:   absolute(sheet, col, r.minRow, r.minRow),
			Values: absolute(sheet, col, r.minRow+1, r.maxRow),
		})
	}
	return series
}

// cellStyle builds an excelize style from the formatting object; nil means
// there is nothing to apply
func cellStyle(formatting map[string]interface{}) *excelize.Style {
	if len(formatting) == 0 {
		return nil
	}

	var st excelize.Style
	applied := false

	font := &excelize.Font{}
	fontSet := false
	if _, ok := formatting["bold"]; ok {
		font.Bold = param.GetBool(formatting, "bold", false)
		fontSet = true
	}
	if _, ok := formatting["italic"]; ok {
		font.Italic = param.GetBool(formatting, "italic", false)
		fontSet = true
	}
	if size, ok := param.GetNumber(formatting, "font_size"); ok {
		font.Size = size
		fontSet = true
	}
	if color, ok := param.GetString(formatting, "font_color"); ok && color != "" {
		font.Color = hexColor(color)
		fontSet = true
	}
	if name, ok := param.GetString(formatting, "font_name"); ok && name != "" {
		font.Family = name
		fontSet = true
	}
	if fontSet {
		st.Font = font
		applied = true
	}

	if bg, ok := param.GetString(formatting, "bg_color"); ok && bg != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(bg)}}
		applied = true
	}

	align := &excelize.Alignment{}
	alignSet := false
	if h, ok := param.GetString(formatting, "horizontal"); ok {
		align.Horizontal = h
		alignSet = true
	}
	if v, ok := param.GetString(formatting, "vertical"); ok {
		align.Vertical = v
		alignSet = true
	}
	if _, ok := formatting["wrap_text"]; ok {
		align.WrapText = param.GetBool(formatting, "wrap_text", false)
		alignSet = true
	}
	if alignSet {
		st.Alignment = align
		applied = true
	}

	if param.GetBool(formatting, "border", false) {
		for _, side := range []string{"left", "right", "top", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: "000000", Style: 1})
		}
		applied = true
	}

	if !applied {
		return nil
	}
	return &st
}

func hexColor(s string) string {
	return strings.ToUpper(strings.TrimPrefix(s, "#"))
}
