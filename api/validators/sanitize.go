package validators

import (
	"strings"
	"unicode/utf8"
)

const maxQueryValueLen = 100

// SanitizeString trims input and caps it at maxLen bytes without splitting a rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || len(trimmed) <= maxLen {
		return trimmed
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return strings.TrimSpace(trimmed[:cut])
}

// SanitizeQuery trims a free-text query parameter to the accepted length.
func SanitizeQuery(input string) string {
	return SanitizeString(input, maxQueryValueLen)
}
