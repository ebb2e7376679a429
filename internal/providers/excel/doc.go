// Package excel exposes Excel workbooks as tools.
//
// Workbooks are excelize files kept open in memory under a UUID handle and
// written to their working file after every change. Sheets are addressed by
// exact name, cells by A1 references.
//
// Charts map "bar" to a clustered column chart, plus line and pie. Each
// column of the data range becomes one series named by its first cell.
package excel
