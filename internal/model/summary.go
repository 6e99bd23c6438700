package model

// Fields is the opaque structured summary returned by a provider: one JSON
// object whose keys depend on the post kind. Accessors substitute defaults
// for missing or mistyped values so rendering never fails on a sparse
// response.
type Fields map[string]any

// Str returns the string at key, or "" when absent or not a string.
func (f Fields) Str(key string) string {
	s, _ := f[key].(string)
	return s
}

// StrOr returns the string at key, or def when absent or empty.
func (f Fields) StrOr(key, def string) string {
	if s := f.Str(key); s != "" {
		return s
	}
	return def
}

// List returns the string items at key. JSON arrays decode as []any, so
// both []string and []any are accepted; non-string elements are skipped.
func (f Fields) List(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
