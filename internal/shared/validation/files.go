package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
)

// ValidateFilePath resolves path and optionally checks existence and extension.
// The resolved absolute path is returned.
func ValidateFilePath(path string, mustExist bool, extensions ...string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: file path cannot be empty", ErrInvalid)
	}

	resolved, err := paths.Expand(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if mustExist {
		info, err := os.Stat(resolved)
		if err != nil {
			return "", fmt.Errorf("%w: file does not exist: %s", ErrInvalid, path)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: path is a directory: %s", ErrInvalid, path)
		}
	}

	if len(extensions) > 0 && !slices.Contains(extensions, paths.Ext(resolved)) {
		return "", fmt.Errorf("%w: file must have one of these extensions: [%s]", ErrInvalid, strings.Join(extensions, ", "))
	}

	return resolved, nil
}
