package office

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
)

// Resource URIs
const (
	TemplatesURI = "office365://templates"
	StatusURI    = "office365://status"
)

// ErrUnknownResource is returned for URIs not served here
var ErrUnknownResource = errors.New("unknown resource")

// Resource describes a read-only JSON document
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mime_type"`
}

// Template is one template file found under the templates directory
type Template struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// Resources lists the resources the provider serves
func (p *Provider) Resources() []Resource {
	return []Resource{
		{
			URI:         TemplatesURI,
			Name:        "Office templates",
			Description: "PowerPoint, Word and Excel templates available to create_* tools",
			MIMEType:    "application/json",
		},
		{
			URI:         StatusURI,
			Name:        "Server status",
			Description: "Active object counts and server version",
			MIMEType:    "application/json",
		},
	}
}

// ReadResource renders the resource at uri as indented JSON. Templates are a
// bare list.
func (p *Provider) ReadResource(ctx context.Context, uri string) (string, error) {
	var v interface{}
	switch uri {
	case TemplatesURI:
		templates, err := p.Templates()
		if err != nil {
			return "", err
		}
		v = templates
	case StatusURI:
		v = p.ServerStatus()
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, uri)
	}

	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", uri, err)
	}
	return string(data), nil
}

// Templates walks the templates directory for Office files. A missing
// directory yields an empty list.
func (p *Provider) Templates() ([]Template, error) {
	templates := []Template{}
	if p.templatesDir == "" {
		return templates, nil
	}
	dir, err := paths.Expand(p.templatesDir)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return templates, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), paths.TemplateGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		kind, ok := paths.TemplateKind(match)
		if !ok {
			continue
		}
		base := filepath.Base(match)
		templates = append(templates, Template{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			Path: filepath.Join(dir, filepath.FromSlash(match)),
			Type: string(kind),
		})
	}
	return templates, nil
}

// ServerStatus summarizes the open objects
func (p *Provider) ServerStatus() map[string]interface{} {
	count := func(l Lister) int {
		if l == nil {
			return 0
		}
		return l.Count()
	}
	return map[string]interface{}{
		"active_presentations": count(p.stores.Presentations),
		"active_documents":     count(p.stores.Documents),
		"active_workbooks":     count(p.stores.Workbooks),
		"server_version":       ServerVersion,
		"platform":             runtime.GOOS,
		"uptime_seconds":       int(time.Since(p.startTime).Seconds()),
	}
}
