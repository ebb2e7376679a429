// Package common holds the plumbing shared by the PowerPoint, Word and Excel
// providers: working-file locations, best-effort opening in the Office app and
// the save path that falls back to the native format when an export through
// the app is not possible.
package common
