package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/passdig/passdig/internal/detectors"
)

// FileConfig is the on-disk YAML configuration shape for passdig. Every list
// may be given inline, through a companion file with one entry per line, or
// both; inline entries come first.
type FileConfig struct {
	Keywords       []string `yaml:"keywords,omitempty"`
	KeywordsFile   *string  `yaml:"keywords_file,omitempty"`
	IgnorePatterns []string `yaml:"ignore_patterns,omitempty"`
	IgnoreFile     *string  `yaml:"ignore_file,omitempty"`
	Include        []string `yaml:"include,omitempty"`
	IncludeFile    *string  `yaml:"include_file,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	ExcludeFile    *string  `yaml:"exclude_file,omitempty"`

	MaxLength       *int    `yaml:"max_length,omitempty"`
	MaxFiles        *int    `yaml:"max_files,omitempty"`
	GlobSyntax      *string `yaml:"glob_syntax,omitempty"`
	Workers         *int    `yaml:"workers,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`

	// Templates replaces the built-in assignment and url templates.
	Templates []detectors.Template `yaml:"templates,omitempty"`

	// dir is where the file was loaded from; relative *_file paths resolve
	// against it.
	dir string
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .passdig.yml/.yaml and passdig.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".passdig.yml", ".passdig.yaml", "passdig.yml", "passdig.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "passdig", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// ReadList reads a plain-text resource with one entry per line. Trailing
// carriage returns are removed and blank lines are dropped; entries are
// otherwise kept verbatim.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func (fc FileConfig) list(inline []string, file *string) ([]string, error) {
	out := append([]string(nil), inline...)
	if file == nil || *file == "" {
		return out, nil
	}
	p := *file
	if !filepath.IsAbs(p) && fc.dir != "" {
		p = filepath.Join(fc.dir, p)
	}
	items, err := ReadList(p)
	if err != nil {
		return nil, err
	}
	return append(out, items...), nil
}

// KeywordList returns inline keywords followed by those in keywords_file.
func (fc FileConfig) KeywordList() ([]string, error) { return fc.list(fc.Keywords, fc.KeywordsFile) }

// IgnoreList returns inline suppression patterns followed by ignore_file.
func (fc FileConfig) IgnoreList() ([]string, error) {
	return fc.list(fc.IgnorePatterns, fc.IgnoreFile)
}

// IncludeList returns inline include globs followed by include_file.
func (fc FileConfig) IncludeList() ([]string, error) { return fc.list(fc.Include, fc.IncludeFile) }

// ExcludeList returns inline exclude globs followed by exclude_file.
func (fc FileConfig) ExcludeList() ([]string, error) { return fc.list(fc.Exclude, fc.ExcludeFile) }
