package detectors

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrConfiguration reports an unusable keyword set or template list.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrDetectorCompilation reports a template that does not compile once
	// merged with the keyword alternation.
	ErrDetectorCompilation = errors.New("detector compilation failed")
)

// Detector is one compiled structural pattern.
type Detector struct {
	Name    string
	Pattern *regexp.Regexp
}

// FirstMatch returns the leftmost match in line.
func (d Detector) FirstMatch(line string) (string, bool) {
	loc := d.Pattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[loc[0]:loc[1]], true
}

// Compile merges the alternation with each template, producing one detector
// per template in template order.
func Compile(alternation string, templates []Template) ([]Detector, error) {
	if alternation == "" {
		return nil, fmt.Errorf("%w: empty keyword alternation", ErrConfiguration)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: no structural templates", ErrConfiguration)
	}
	out := make([]Detector, 0, len(templates))
	for i, t := range templates {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("template_%d", i)
		}
		if t.Tail == "" {
			return nil, fmt.Errorf("%w: template %q has an empty tail", ErrDetectorCompilation, name)
		}
		re, err := regexp.Compile("(?:" + alternation + ")" + identSuffix + t.Tail)
		if err != nil {
			return nil, fmt.Errorf("%w: template %q: %v", ErrDetectorCompilation, name, err)
		}
		out = append(out, Detector{Name: name, Pattern: re})
	}
	return out, nil
}

// Build is BuildAlternation followed by Compile. A nil template list selects
// DefaultTemplates.
func Build(words []string, templates []Template) ([]Detector, error) {
	alt, err := BuildAlternation(words)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = DefaultTemplates()
	}
	return Compile(alt, templates)
}

// IDs returns the names of the built-in detectors.
func IDs() []string {
	ts := DefaultTemplates()
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.Name
	}
	return ids
}
