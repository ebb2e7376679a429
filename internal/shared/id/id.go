// Package id names the objects the server hands out.
//
// Presentations, documents and workbooks get UUIDv4 handles that clients
// pass back verbatim. Slides, document elements and requests get a kind
// prefix and a monotonic ULID, so they sort by creation and read well in
// logs: slide_01J..., elem_01J..., req_01J...
package id

import (
	"crypto/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type (
	HandleID  string
	SlideID   string
	ElementID string
	RequestID string
)

// Kind is the prefix of a ULID-based ID
type Kind string

const (
	KindSlide   Kind = "slide"
	KindElement Kind = "elem"
	KindRequest Kind = "req"
)

// HandlePattern matches a lowercase hyphenated UUID of any version
var HandlePattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
	now     = time.Now
)

func next(kind Kind) string {
	mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(now()), entropy)
	mu.Unlock()
	return string(kind) + "_" + u.String()
}

// NewHandle returns a handle for a presentation, document or workbook
func NewHandle() HandleID { return HandleID(uuid.NewString()) }

func NewSlideID() SlideID     { return SlideID(next(KindSlide)) }
func NewElementID() ElementID { return ElementID(next(KindElement)) }
func NewRequestID() RequestID { return RequestID(next(KindRequest)) }

func (h HandleID) String() string  { return string(h) }
func (s SlideID) String() string   { return string(s) }
func (e ElementID) String() string { return string(e) }
func (r RequestID) String() string { return string(r) }

// IsHandle reports whether s has the handle shape
func IsHandle(s string) bool {
	return HandlePattern.MatchString(s)
}

// Describe splits a prefixed ID into its kind and creation time. ok is
// false for handles and anything this package did not produce.
func Describe(s string) (kind Kind, created time.Time, ok bool) {
	prefix, rest, found := strings.Cut(s, "_")
	if !found {
		return "", time.Time{}, false
	}
	switch Kind(prefix) {
	case KindSlide, KindElement, KindRequest:
	default:
		return "", time.Time{}, false
	}
	u, err := ulid.ParseStrict(rest)
	if err != nil {
		return "", time.Time{}, false
	}
	return Kind(prefix), ulid.Time(u.Time()), true
}
