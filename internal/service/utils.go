package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 removes invalid UTF-8 sequences from string
// so that stored text always decodes cleanly in the frontend.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8 sequence, skip this byte
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// cleanText sanitizes and trims free text.
func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

// cleanDescription maps blank descriptions to nil.
func cleanDescription(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := cleanText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
