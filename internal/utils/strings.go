package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kestrel-crypto/kestrel/internal/ui"
)

// MaxContactNameLength is the longest contact name accepted, in runes.
const MaxContactNameLength = 64

// SanitizeContactName trims a contact name and collapses runs of whitespace
// into single spaces.
func SanitizeContactName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// IsValidContactName reports whether name can be stored as a contact name.
// Names must be non-empty valid UTF-8, at most MaxContactNameLength runes,
// and free of control characters.
func IsValidContactName(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}
	if utf8.RuneCountInString(name) > MaxContactNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// FormatNames formats a slice of contact names into a readable list.
func FormatNames(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Highlight.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}
