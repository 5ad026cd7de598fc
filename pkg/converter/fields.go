package converter

// Guarded accessors over decoded documents. Each reports ok=false instead of
// panicking so the validator can turn any mismatch into a single error kind.

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSequence(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// nonEmptyString returns obj[key] when it is present, a string, and not empty.
func nonEmptyString(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
