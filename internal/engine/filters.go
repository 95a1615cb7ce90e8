package engine

import (
	"fmt"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/passdig/passdig/internal/detectors"
)

// GlobSyntax selects how include/exclude globs are interpreted.
type GlobSyntax string

const (
	// GlobShell uses fnmatch-style matching: '*' and '?' also match the path
	// separator, so "*.py" matches "app/main.py". Braces are literal text,
	// not alternation.
	GlobShell GlobSyntax = "shell"
	// GlobPath uses path-aware matching: '*' stays within one segment and
	// '**' spans directories.
	GlobPath GlobSyntax = "path"
)

// ParseGlobSyntax maps a config or flag value to a GlobSyntax. The empty
// string selects GlobShell.
func ParseGlobSyntax(s string) (GlobSyntax, error) {
	switch GlobSyntax(s) {
	case "", GlobShell:
		return GlobShell, nil
	case GlobPath:
		return GlobPath, nil
	}
	return "", fmt.Errorf("%w: unknown glob syntax %q (want shell or path)", detectors.ErrConfiguration, s)
}

type matcher func(path string) bool

// PathFilter decides from include and exclude globs whether a path produced
// by the walk is eligible for scanning. The zero value accepts everything.
type PathFilter struct {
	include []matcher
	exclude []matcher
}

// NewPathFilter compiles the include and exclude globs.
func NewPathFilter(include, exclude []string, syntax GlobSyntax) (PathFilter, error) {
	var pf PathFilter
	var err error
	if pf.include, err = compileGlobs(include, syntax); err != nil {
		return PathFilter{}, err
	}
	if pf.exclude, err = compileGlobs(exclude, syntax); err != nil {
		return PathFilter{}, err
	}
	return pf, nil
}

// Allowed applies the include list first. When includes are configured they
// decide alone: a path matching one is accepted without consulting the
// excludes. Excludes only apply when there are no includes.
func (pf PathFilter) Allowed(path string) bool {
	if len(pf.include) > 0 {
		return matchAny(pf.include, path)
	}
	if len(pf.exclude) > 0 && matchAny(pf.exclude, path) {
		return false
	}
	return true
}

func matchAny(ms []matcher, path string) bool {
	for _, m := range ms {
		if m(path) {
			return true
		}
	}
	return false
}

func compileGlobs(globs []string, syntax GlobSyntax) ([]matcher, error) {
	var out []matcher
	for _, g := range globs {
		if g == "" {
			continue
		}
		m, err := compileGlob(g, syntax)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func compileGlob(pattern string, syntax GlobSyntax) (matcher, error) {
	switch syntax {
	case GlobPath:
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("%w: bad glob %q", detectors.ErrConfiguration, pattern)
		}
		return func(p string) bool {
			ok, _ := doublestar.PathMatch(pattern, p)
			return ok
		}, nil
	default:
		// no separators: '*' crosses '/' like fnmatch
		g, err := glob.Compile(braceEscaper.Replace(pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: bad glob %q: %v", detectors.ErrConfiguration, pattern, err)
		}
		return g.Match, nil
	}
}

var braceEscaper = strings.NewReplacer("{", `\{`, "}", `\}`)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}
