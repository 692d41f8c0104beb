package utils

import (
	"strings"
	"testing"
)

func TestSanitizeContactName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Unchanged", "Alice", "Alice"},
		{"TrimWhitespace", "  Alice  ", "Alice"},
		{"CollapseSpaces", "Alice   Smith", "Alice Smith"},
		{"TabsAndNewlines", "Alice\t\nSmith", "Alice Smith"},
		{"Empty", "   ", ""},
		{"PreservesCase", "aLiCe", "aLiCe"},
		{"Unicode", " Zoë  Ångström ", "Zoë Ångström"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeContactName(tc.input)
			if result != tc.expected {
				t.Errorf("SanitizeContactName(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestIsValidContactName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Simple", "alice", true},
		{"WithSpaces", "Alice Smith", true},
		{"Unicode", "日本語", true},
		{"Empty", "", false},
		{"ControlChar", "ali\x07ce", false},
		{"InvalidUTF8", "ali\xffce", false},
		{"MaxLength", strings.Repeat("a", MaxContactNameLength), true},
		{"TooLong", strings.Repeat("a", MaxContactNameLength+1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidContactName(tc.input); got != tc.valid {
				t.Errorf("IsValidContactName(%q) = %v, expected %v", tc.input, got, tc.valid)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatNames([]string{"alice", "bob"})
	want := "\n    - 'alice'\n    - 'bob'\n"
	if got != want {
		t.Errorf("FormatNames() = %q, expected %q", got, want)
	}

	if got := FormatNames(nil); !strings.HasPrefix(got, "\n") {
		t.Errorf("FormatNames(nil) = %q, expected a leading newline", got)
	}
}
