package detectors

// Template is the structural tail appended after the keyword and its
// optional identifier suffix.
type Template struct {
	Name string `yaml:"name"`
	Tail string `yaml:"tail"`
}

const (
	// AssignmentTemplate matches key = "value" and key: 'value' with a quoted
	// value of at least four characters.
	AssignmentTemplate = `[ \t]*[:=][ \t]*(?:"[^"']{4,}"|'[^"']{4,}')`
	// URLTemplate matches inline values such as query parameters or DSN
	// fragments: key=value with at least four unquoted, undelimited characters.
	URLTemplate = `[:=][^"'& ,;{}()<>\n]{4,}`
)

// identSuffix lets the keyword sit at the start of a longer identifier
// (password_hash, tokenValue).
const identSuffix = `(?:[a-zA-Z_][a-zA-Z0-9_]*)?`

// DefaultTemplates returns the assignment and URL templates, in that order.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "assignment", Tail: AssignmentTemplate},
		{Name: "url", Tail: URLTemplate},
	}
}
