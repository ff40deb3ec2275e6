package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText prepares user-entered text for storage.
//   - Composes unicode (NFC), so "é" and "é" compare equal
//   - Trims leading and trailing whitespace
//
// Inner whitespace, including newlines in descriptions, is preserved.
func CleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// CleanOptional is CleanText for optional fields: an empty result means absent.
func CleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanText(*s)
	return &cleaned
}
