package render

import "strconv"

// Helpers for digging through decoded webhook payloads. Payloads are opaque
// maps straight out of encoding/json, so every access has to tolerate a
// missing key or an unexpected shape.

func childMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]interface{})
	return child
}

func childSlice(m map[string]interface{}, key string) []interface{} {
	if m == nil {
		return nil
	}
	child, _ := m[key].([]interface{})
	return child
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

// numberField renders a JSON number as the integer text GitHub uses for
// issue and pull request numbers.
func numberField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	switch typed := m[key].(type) {
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case string:
		return typed
	default:
		return ""
	}
}
