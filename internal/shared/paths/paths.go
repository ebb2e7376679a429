package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies an Office file by its application
type Kind string

const (
	KindPowerPoint Kind = "powerpoint"
	KindWord       Kind = "word"
	KindExcel      Kind = "excel"
)

// File extensions, lowercase with leading dot
const (
	ExtPPTX = ".pptx"
	ExtPOTX = ".potx"
	ExtDOCX = ".docx"
	ExtDOTX = ".dotx"
	ExtXLSX = ".xlsx"
	ExtXLTX = ".xltx"
	ExtPDF  = ".pdf"
)

// templateKinds maps every extension that can act as a template source
var templateKinds = map[string]Kind{
	ExtPPTX: KindPowerPoint,
	ExtPOTX: KindPowerPoint,
	ExtDOCX: KindWord,
	ExtDOTX: KindWord,
	ExtXLSX: KindExcel,
	ExtXLTX: KindExcel,
}

// TemplateGlob matches every template-capable file below a directory
const TemplateGlob = "**/*.{pptx,potx,docx,dotx,xlsx,xltx}"

// Expand resolves a leading ~ and returns an absolute, cleaned path
func Expand(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

// EnsureDir creates dir and any parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// WorkingFile returns the per-handle working file inside dir
func WorkingFile(dir, handle, ext string) string {
	return filepath.Join(dir, handle+ext)
}

// Ext returns the lowercase extension of path
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// WithExt swaps the extension of path for ext
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// EnsureExt appends ext when path has no extension at all
func EnsureExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}

// TemplateKind reports which application a template file belongs to
func TemplateKind(path string) (Kind, bool) {
	kind, ok := templateKinds[Ext(path)]
	return kind, ok
}

// PrepareOutput expands path and creates its parent directory
func PrepareOutput(path string) (string, error) {
	resolved, err := Expand(path)
	if err != nil {
		return "", err
	}
	if err := EnsureDir(filepath.Dir(resolved)); err != nil {
		return "", err
	}
	return resolved, nil
}
