package validation

import "fmt"

// Limits on tool calls arriving over either transport
const (
	MaxPayloadSize = 1 << 20
	MaxParamsDepth = 8
)

// ValidateParamsDepth rejects params whose maps and arrays nest deeper than
// maxDepth. Excel ranges are arrays of rows, so two levels are routine.
func ValidateParamsDepth(params map[string]interface{}, maxDepth int) error {
	if d := depth(params, maxDepth); d > maxDepth {
		return fmt.Errorf("%w: params nest at least %d levels deep, maximum %d", ErrInvalid, d, maxDepth)
	}
	return nil
}

// depth counts container levels below v. Scalars and empty containers are
// 0. It stops descending once limit is passed.
func depth(v interface{}, limit int) int {
	var children []interface{}
	switch t := v.(type) {
	case map[string]interface{}:
		for _, c := range t {
			children = append(children, c)
		}
	case []interface{}:
		children = t
	}

	deepest := -1
	for _, c := range children {
		if d := depth(c, limit-1); d > deepest {
			deepest = d
		}
		if deepest >= limit {
			break
		}
	}
	return deepest + 1
}
