package workspace

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
)

// Workspace owns the directory holding per-object working files
type Workspace struct {
	dir string
}

// New resolves dir (which may start with ~) and creates it
func New(dir string) (*Workspace, error) {
	resolved, err := paths.Expand(dir)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDir(resolved); err != nil {
		return nil, err
	}
	return &Workspace{dir: resolved}, nil
}

// Dir returns the absolute working directory
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the working file for handle with extension ext
func (w *Workspace) Path(handle, ext string) string {
	return paths.WorkingFile(w.dir, handle, ext)
}

// Remove deletes a working file; a missing file is not an error
func (w *Workspace) Remove(handle, ext string) error {
	if err := os.Remove(w.Path(handle, ext)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove working file: %w", err)
	}
	return nil
}
