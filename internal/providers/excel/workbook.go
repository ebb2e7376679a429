package excel

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"
)

var errSheetNotFound = errors.New("worksheet not found")

// Workbook is an open Excel workbook backed by an excelize file
type Workbook struct {
	ID                   string
	Title                string
	FilePath             string
	Template             string
	AppleScriptAvailable bool
	CreatedAt            time.Time

	file   *excelize.File
	charts int
}

func (w *Workbook) render() error {
	return w.save(w.FilePath)
}

func (w *Workbook) save(path string) error {
	return w.file.SaveAs(path)
}

// sheet checks that name is an existing worksheet. excelize matches sheet
// names case-insensitively; tools address them exactly.
func (w *Workbook) sheet(name string) error {
	if !slices.Contains(w.file.GetSheetList(), name) {
		return fmt.Errorf("%w: %s", errSheetNotFound, name)
	}
	return nil
}

func (w *Workbook) activeSheet() string {
	return w.file.GetSheetName(w.file.GetActiveSheetIndex())
}

func (w *Workbook) metadata() map[string]interface{} {
	return map[string]interface{}{
		"workbook_id":           w.ID,
		"title":                 w.Title,
		"file_path":             w.FilePath,
		"worksheet_count":       len(w.file.GetSheetList()),
		"active_sheet":          w.activeSheet(),
		"applescript_available": w.AppleScriptAvailable,
		"created_at":            w.CreatedAt,
	}
}

func (w *Workbook) info() map[string]interface{} {
	data := w.metadata()
	data["worksheets"] = w.file.GetSheetList()
	data["chart_count"] = w.charts
	return data
}
