package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// CheckResponse validates a decoded API response and returns its homework list.
// An empty list is a valid outcome and is returned as an empty, non-nil slice.
func CheckResponse(resp any) ([]any, error) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("expected a JSON object, got %s", typeName(resp))}
	}
	raw, ok := obj["homeworks"]
	if !ok {
		return nil, &ShapeError{Reason: `no "homeworks" key`}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf(`"homeworks" is %s, not a list`, typeName(raw))}
	}
	if len(list) == 0 {
		return []any{}, nil
	}
	return list, nil
}

// CurrentDate extracts the server-reported current_date in Unix seconds.
func CurrentDate(resp any) (int64, bool) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := obj["current_date"].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case json.Number, float64, int, int64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
