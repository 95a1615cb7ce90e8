// Package ignore holds the suppression patterns that mark a matched line as
// a false positive. Suppression is line-scoped: a pattern is tested against
// the whole raw line, anchored at its first character, never against the
// matched target alone.
package ignore

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern reports a suppression pattern that is not a valid
// regular expression.
var ErrInvalidPattern = errors.New("invalid suppression pattern")

// Matcher decides whether a line is suppressed. The zero value suppresses
// nothing.
type Matcher struct {
	patterns []*regexp.Regexp
}

// Compile anchors each pattern at the start of the line and compiles it.
func Compile(patterns []string) (Matcher, error) {
	var m Matcher
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return Matcher{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match reports whether any pattern matches line from its first character.
func (m Matcher) Match(line string) bool {
	for _, re := range m.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (m Matcher) Len() int { return len(m.patterns) }
