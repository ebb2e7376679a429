package validation

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Type names accepted by Rule.Type, matching tool Parameter types
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "boolean"
	TypeObject = "object"
	TypeArray  = "array"
)

// ErrInvalid matches every rule violation through errors.Is
var ErrInvalid = errors.New("invalid input")

// FieldError is a rule violation. Its message is shown to callers as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is reports ErrInvalid
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

// Rule constrains a single parameter. Zero values disable a check.
type Rule struct {
	Field     string
	Required  bool
	Type      string
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Choices   []string
	MinValue  *float64
	MaxValue  *float64
}

// Schema is an ordered rule list; the first violation wins
type Schema []Rule

// Bound returns a pointer for Rule.MinValue/MaxValue literals
func Bound(v float64) *float64 { return &v }

// Validate checks params against the schema
func (s Schema) Validate(params map[string]interface{}) error {
	for _, rule := range s {
		if err := rule.check(params[rule.Field]); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) check(value interface{}) error {
	if value == nil {
		if r.Required {
			return invalid(r.Field, "Required field '%s' is missing", r.Field)
		}
		return nil
	}

	if r.Type != "" && !matchesType(value, r.Type) {
		return invalid(r.Field, "Field '%s' must be of type %s", r.Field, r.Type)
	}

	if s, ok := value.(string); ok {
		n := utf8.RuneCountInString(s)
		if r.MinLength > 0 && n < r.MinLength {
			return invalid(r.Field, "Field '%s' must be at least %d characters", r.Field, r.MinLength)
		}
		if r.MaxLength > 0 && n > r.MaxLength {
			return invalid(r.Field, "Field '%s' must be at most %d characters", r.Field, r.MaxLength)
		}
		if strings.Contains(s, "\x00") {
			return invalid(r.Field, "Field '%s' contains invalid characters", r.Field)
		}
		if r.Pattern != nil && !r.Pattern.MatchString(s) {
			return invalid(r.Field, "Field '%s' does not match required pattern", r.Field)
		}
		if len(r.Choices) > 0 && !slices.Contains(r.Choices, s) {
			return invalid(r.Field, "Field '%s' must be one of [%s]", r.Field, strings.Join(r.Choices, ", "))
		}
	}

	if f, ok := toFloat(value); ok {
		if r.MinValue != nil && f < *r.MinValue {
			return invalid(r.Field, "Field '%s' must be at least %v", r.Field, *r.MinValue)
		}
		if r.MaxValue != nil && f > *r.MaxValue {
			return invalid(r.Field, "Field '%s' must be at most %v", r.Field, *r.MaxValue)
		}
	}

	return nil
}

func matchesType(value interface{}, typ string) bool {
	switch typ {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		_, ok := toFloat(value)
		return ok
	case TypeBool:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case TypeArray:
		_, ok := value.([]interface{})
		return ok
	default:
		return true
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	default:
		return 0, false
	}
}

func invalid(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
