package detectors

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var defaultKeywords = []string{"token", "oauth", "secret", "pass", "password", "senha"}

// DefaultKeywords returns the built-in keyword list used when the caller
// supplies none.
func DefaultKeywords() []string {
	out := make([]string, len(defaultKeywords))
	copy(out, defaultKeywords)
	return out
}

// BuildAlternation renders words as a single alternation in which every
// letter position is an explicit [Uu] class, so "pass" becomes
// (?:[Pp][Aa][Ss][Ss]). Words keep their input order and are not
// deduplicated.
func BuildAlternation(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("%w: keyword list is empty", ErrConfiguration)
	}
	parts := make([]string, 0, len(words))
	for i, w := range words {
		if w == "" {
			return "", fmt.Errorf("%w: keyword %d is empty", ErrConfiguration, i)
		}
		parts = append(parts, caseClass(w))
	}
	return strings.Join(parts, "|"), nil
}

func caseClass(word string) string {
	var b strings.Builder
	b.WriteString("(?:")
	for _, r := range word {
		up, low := unicode.ToUpper(r), unicode.ToLower(r)
		if up == low {
			b.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		b.WriteByte('[')
		b.WriteRune(up)
		b.WriteRune(low)
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}
