// Package normalize turns raw third-party review records into the canonical
// review shape: sanitized text, closed enumerations, a 0–5 normalized rating,
// and a derived approval state.
package normalize

import (
	"strings"
	"unicode"
)

// markupSignificant are characters stripped from free text because they carry
// meaning in HTML or template contexts downstream.
const markupSignificant = "<>`"

// SanitizeText strips control characters and markup-significant characters
// from free text and trims surrounding whitespace.
func SanitizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		if strings.ContainsRune(markupSignificant, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// SanitizeOptional sanitizes a nullable free-text field. A field reduced to
// the empty string becomes nil.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := SanitizeText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// SanitizeTags sanitizes a tag list, dropping entries reduced to empty.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if cleaned := SanitizeText(tag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
