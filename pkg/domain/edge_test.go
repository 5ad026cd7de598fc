package domain

import "testing"

func TestCondition_Label(t *testing.T) {
	tests := []struct {
		name    string
		cond    Condition
		want    string
		present bool
	}{
		{"zero value", Condition{}, "", false},
		{"absent", NoCondition(), "", false},
		{"string", StringCondition("ok"), "ok", true},
		{"empty string", StringCondition(""), "", true},
		{"true", BoolCondition(true), "true", true},
		{"false", BoolCondition(false), "false", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cond.Label()
			if ok != tt.present {
				t.Fatalf("Label() present = %v, want %v", ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
			if tt.cond.IsPresent() != tt.present {
				t.Errorf("IsPresent() = %v, want %v", tt.cond.IsPresent(), tt.present)
			}
		})
	}
}

func TestParseNodeKind(t *testing.T) {
	for _, s := range []string{"function", "tool"} {
		if k, ok := ParseNodeKind(s); !ok || string(k) != s {
			t.Errorf("ParseNodeKind(%q) = %q, %v", s, k, ok)
		}
	}
	for _, s := range []string{"", "Tool", "logic", " function"} {
		if _, ok := ParseNodeKind(s); ok {
			t.Errorf("ParseNodeKind(%q) accepted an unknown kind", s)
		}
	}
}
