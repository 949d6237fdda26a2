package chattr

import (
	"reflect"
	"testing"
)

func TestEscapeTemplate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"it's", "it''s"},
		{"{x}", "'{x'}"},
		{"'{'", "'''{''"},
		{"%s", "%s"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := EscapeTemplate(tt.input)
			if result != tt.expected {
				t.Errorf("EscapeTemplate(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		args     int
	}{
		{"no placeholders", "no placeholders", 0},
		{"%s", "{0}", 1},
		{"%s %s", "{0} {1}", 2},
		{"%2$s %1$s", "{1} {0}", 2},
		{"%s before %2$s", "{0} before {1}", 2},
		{"%1$s and %s", "{0} and {0}", 2},
		{"%d is not rewritten", "%d is not rewritten", 0},
		{"%$s is not positional", "%$s is not positional", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, args, err := RewritePlaceholders(tt.input)
			if err != nil {
				t.Fatalf("RewritePlaceholders(%q) failed: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("RewritePlaceholders(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if args != tt.args {
				t.Errorf("RewritePlaceholders(%q) args = %d, want %d", tt.input, args, tt.args)
			}
		})
	}
}

func TestCountPlaceholders(t *testing.T) {
	sig := CountPlaceholders("%s took %2$s from %1$s and %s")

	if sig.Sequential != 2 {
		t.Errorf("Sequential = %d, want 2", sig.Sequential)
	}
	if !reflect.DeepEqual(sig.Positional, []int{1, 2}) {
		t.Errorf("Positional = %v, want [1 2]", sig.Positional)
	}
	if sig.Total() != 4 {
		t.Errorf("Total() = %d, want 4", sig.Total())
	}

	reordered := CountPlaceholders("%1$s gave %s to %2$s %s")
	if !sig.Equal(reordered) {
		t.Error("signatures with the same placeholders in different order should be equal")
	}

	if sig.Equal(CountPlaceholders("%s took %s")) {
		t.Error("signatures with different placeholders should differ")
	}

	if !CountPlaceholders("%s was slain by %s").Equal(CountPlaceholders("%2$s tötete %1$s")) {
		t.Error("positional reordering of sequential placeholders should be equal")
	}
	if !reflect.DeepEqual(sig.Slots(), []int{0, 0, 1, 1}) {
		t.Errorf("Slots() = %v, want [0 0 1 1]", sig.Slots())
	}
}
