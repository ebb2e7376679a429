package params

import (
	"fmt"
	"math"
	"strconv"

	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// Failuref creates a failed result from a format string
func Failuref(format string, args ...interface{}) (*types.Result, error) {
	return Failure(fmt.Sprintf(format, args...))
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetStringDefault extracts a string or returns def when absent or empty
func GetStringDefault(params map[string]interface{}, key, def string) string {
	if val, ok := params[key].(string); ok && val != "" {
		return val
	}
	return def
}

// GetBool extracts bool from params with default
func GetBool(params map[string]interface{}, key string, def bool) bool {
	if val, ok := params[key].(bool); ok {
		return val
	}
	return def
}

// GetNumber extracts float64 from params with type coercion
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	return ToNumber(params[key])
}

// GetInt extracts an integer, truncating fractional JSON numbers
func GetInt(params map[string]interface{}, key string) (int, bool) {
	f, ok := GetNumber(params, key)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// GetIntDefault extracts an integer or returns def
func GetIntDefault(params map[string]interface{}, key string, def int) int {
	if v, ok := GetInt(params, key); ok {
		return v
	}
	return def
}

// GetMap extracts a nested object
func GetMap(params map[string]interface{}, key string) (map[string]interface{}, bool) {
	val, ok := params[key].(map[string]interface{})
	return val, ok
}

// GetArray extracts a list of arbitrary values
func GetArray(params map[string]interface{}, key string) ([]interface{}, bool) {
	switch v := params[key].(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// GetStringSlice extracts string slice from params
func GetStringSlice(params map[string]interface{}, key string) ([]string, bool) {
	switch v := params[key].(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// GetMatrix extracts a two-dimensional array such as table or range data
func GetMatrix(params map[string]interface{}, key string) ([][]interface{}, bool) {
	switch v := params[key].(type) {
	case [][]interface{}:
		return v, true
	case []interface{}:
		out := make([][]interface{}, 0, len(v))
		for _, row := range v {
			switch r := row.(type) {
			case []interface{}:
				out = append(out, r)
			case []string:
				cells := make([]interface{}, len(r))
				for i, s := range r {
					cells[i] = s
				}
				out = append(out, cells)
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// ToNumber coerces JSON and native numeric values to float64
func ToNumber(val interface{}) (float64, bool) {
	switch v := val.(type) {
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

// Stringify renders a cell-like value the way a user would type it
func Stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
