package jira

// stringArg returns the string at key, or def when the key is absent
// or holds a different type.
func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return def
}

// intArg returns the integer at key, or def when absent. JSON numbers
// decode as float64; integers from Go callers are accepted too.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
