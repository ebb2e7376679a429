package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
	"github.com/GriffinCanCode/office-mcp/internal/shared/validation"
)

var (
	// ErrInvalidToolID is returned for tool IDs without a "service.tool" shape
	ErrInvalidToolID = errors.New("invalid tool ID format")
	// ErrServiceNotFound is returned when no provider owns the tool ID prefix
	ErrServiceNotFound = errors.New("service not found")
	// ErrToolNotFound is returned when the service exists but does not declare the tool
	ErrToolNotFound = errors.New("tool not found")
	// ErrDuplicateService is returned when two providers claim one service ID
	ErrDuplicateService = errors.New("service already registered")
)

// Provider is implemented by each office service
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Observer receives one callback per tool execution
type Observer interface {
	RecordToolExecution(service, tool, status string, duration time.Duration)
}

// Option configures a Registry
type Option func(*Registry)

// WithObserver reports every execution to o
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.observer = o }
}

type entry struct {
	provider Provider
	def      types.Service
}

// Registry routes "service.tool" calls to providers. Definitions are read
// once at registration.
type Registry struct {
	observer Observer

	mu       sync.RWMutex
	services map[string]entry
	tools    map[string]types.Tool
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		services: make(map[string]entry),
		tools:    make(map[string]types.Tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a provider and indexes its tools. Every tool ID must carry
// the service ID as its prefix.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return errors.New("service ID cannot be empty")
	}
	for _, tool := range def.Tools {
		if !strings.HasPrefix(tool.ID, def.ID+".") {
			return fmt.Errorf("tool %q does not belong to service %q", tool.ID, def.ID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateService, def.ID)
	}
	r.services[def.ID] = entry{provider: provider, def: def}
	for _, tool := range def.Tools {
		r.tools[tool.ID] = tool
	}
	return nil
}

// Get retrieves a provider by service ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.services[serviceID]
	return e.provider, ok
}

// Tool looks up one tool definition
func (r *Registry) Tool(toolID string) (types.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[toolID]
	return tool, ok
}

// List returns services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	services := make([]types.Service, 0, len(r.services))
	for _, e := range r.services {
		if category == nil || e.def.Category == *category {
			services = append(services, e.def)
		}
	}
	r.mu.RUnlock()

	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Tools returns every registered tool sorted by ID
func (r *Registry) Tools() []types.Tool {
	r.mu.RLock()
	tools := make([]types.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	r.mu.RUnlock()

	sort.Slice(tools, func(i, j int) bool { return tools[i].ID < tools[j].ID })
	return tools
}

// Discover ranks services against a free-text intent such as "add a chart
// to my spreadsheet". Services that match nothing are left out.
func (r *Registry) Discover(intent string, limit int) []types.Service {
	words := intentWords(intent)
	if len(words) == 0 {
		return nil
	}

	type ranked struct {
		def   types.Service
		score int
	}
	var results []ranked
	for _, def := range r.List(nil) {
		if score := relevance(words, def); score > 0 {
			results = append(results, ranked{def, score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}
	out := make([]types.Service, limit)
	for i := range out {
		out[i] = results[i].def
	}
	return out
}

// Execute validates toolID, runs it on the owning provider and reports the
// outcome to the observer
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := validation.ValidateToolID(toolID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToolID, err)
	}
	serviceID, toolName, ok := strings.Cut(toolID, ".")
	if !ok || toolName == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToolID, toolID)
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	if _, ok := r.Tool(toolID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, toolID)
	}

	if params == nil {
		params = map[string]interface{}{}
	}

	start := time.Now()
	result, err := provider.Execute(ctx, toolID, params, appCtx)
	if r.observer != nil {
		r.observer.RecordToolExecution(serviceID, toolName, status(result, err), time.Since(start))
	}
	return result, err
}

// Stats summarizes what is registered
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, e := range r.services {
		categories[string(e.def.Category)]++
	}
	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    len(r.tools),
		"categories":     categories,
	}
}

// status classifies an execution as success, failure or error
func status(result *types.Result, err error) string {
	switch {
	case err != nil:
		return "error"
	case result != nil && result.Success:
		return "success"
	default:
		return "failure"
	}
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "in": true, "of": true,
	"my": true, "and": true, "for": true, "with": true, "into": true,
}

func intentWords(intent string) []string {
	fields := strings.FieldsFunc(strings.ToLower(intent), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	words := fields[:0]
	for _, w := range fields {
		if !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}

// relevance weighs a service name hit highest, then tool names, then
// capabilities, category and description words
func relevance(words []string, def types.Service) int {
	score := 0
	for _, w := range words {
		switch {
		case w == def.ID || strings.Contains(strings.ToLower(def.Name), w):
			score += 10
		case w == string(def.Category):
			score += 4
		}
		for _, tool := range def.Tools {
			if containsWord(strings.TrimPrefix(tool.ID, def.ID+"."), w) {
				score += 3
			}
		}
		for _, c := range def.Capabilities {
			if containsWord(c, w) {
				score += 2
			}
		}
		if len(w) > 3 && strings.Contains(strings.ToLower(def.Description), w) {
			score++
		}
	}
	return score
}

// containsWord matches w against the parts of a snake_case name
func containsWord(name, w string) bool {
	for _, part := range strings.Split(strings.ToLower(name), "_") {
		if part == w || strings.TrimSuffix(w, "s") == part {
			return true
		}
	}
	return false
}
