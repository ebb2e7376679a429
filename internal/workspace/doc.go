// Package workspace keeps open Office objects in memory and their working
// files on disk.
//
// Each presentation, document and workbook lives in a Store under its UUID
// handle and is re-rendered to <dir>/<handle>.<ext> after every mutation, so
// the file on disk always reflects the last successful tool call.
package workspace
