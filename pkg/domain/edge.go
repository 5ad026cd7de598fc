package domain

import "strconv"

// ConditionKind tags the variant held by a Condition.
type ConditionKind int

const (
	// ConditionAbsent means the edge is unconditional (missing key or null).
	ConditionAbsent ConditionKind = iota
	// ConditionString holds a free-form condition label.
	ConditionString
	// ConditionBool holds a boolean branch label.
	ConditionBool
)

// Condition is the optional guard of an edge: absent, a string or a boolean.
// The zero value is the absent condition.
type Condition struct {
	kind ConditionKind
	str  string
	b    bool
}

// NoCondition returns the absent condition.
func NoCondition() Condition { return Condition{} }

// StringCondition wraps a string label. The content is not interpreted.
func StringCondition(s string) Condition {
	return Condition{kind: ConditionString, str: s}
}

// BoolCondition wraps a boolean label.
func BoolCondition(b bool) Condition {
	return Condition{kind: ConditionBool, b: b}
}

// Kind reports which variant is held.
func (c Condition) Kind() ConditionKind { return c.kind }

// IsPresent reports whether the edge carries a condition.
func (c Condition) IsPresent() bool { return c.kind != ConditionAbsent }

// Label renders the condition as the runtime expects it.
// Booleans become "true" or "false", strings pass through unchanged.
// The second result is false for the absent condition.
func (c Condition) Label() (string, bool) {
	switch c.kind {
	case ConditionString:
		return c.str, true
	case ConditionBool:
		return strconv.FormatBool(c.b), true
	default:
		return "", false
	}
}

// Edge is a validated directed link between two node ids.
type Edge struct {
	Source    string
	Target    string
	Condition Condition
}
