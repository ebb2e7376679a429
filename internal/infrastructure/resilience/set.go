package resilience

import (
	"sort"
	"sync"
)

// Set hands out one breaker per key, all sharing a policy. The AppleScript
// bridge keys by application so a hung Excel leaves Word usable.
type Set struct {
	prefix string
	policy Policy

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewSet creates an empty set. Breakers are named prefix/key.
func NewSet(prefix string, policy Policy) *Set {
	return &Set{prefix: prefix, policy: policy, breakers: make(map[string]*Breaker)}
}

// Get returns the breaker for key, creating it on first use
func (s *Set) Get(key string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.breakers[key]
	if !ok {
		b = New(s.prefix+"/"+key, s.policy)
		s.breakers[key] = b
	}
	return b
}

// Snapshots returns every breaker's snapshot sorted by name
func (s *Set) Snapshots() []Snapshot {
	s.mu.Lock()
	list := make([]*Breaker, 0, len(s.breakers))
	for _, b := range s.breakers {
		list = append(list, b)
	}
	s.mu.Unlock()

	out := make([]Snapshot, 0, len(list))
	for _, b := range list {
		out = append(out, b.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
