package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Anything but letters, digits, '+' and '#' separates words, so c++ and c# survive.
var separators = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)

// NormalizeText lowercases s and collapses every run of separators into a single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(separators.ReplaceAllString(strings.ToLower(s), " ")), " ")
}

// NormalizeSkill normalizes a skill name; multi-word skills keep single spaces.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// CountPhrase counts whole-word occurrences of an already normalized phrase:
// "rest api" matches in "rest api" but not in "rest apis".
func CountPhrase(normalizedText, normalizedPhrase string) int {
	if normalizedPhrase == "" {
		return 0
	}
	return strings.Count(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
