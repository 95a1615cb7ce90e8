package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/passdig/passdig/internal/detectors"
	"github.com/passdig/passdig/internal/ignore"
	"github.com/passdig/passdig/internal/types"
)

// DefaultMaxLength is the longest line, in characters, that is evaluated.
const DefaultMaxLength = 1000

// Config controls one scan. It is read-only once the scan starts.
type Config struct {
	Root string

	// Keywords defaults to detectors.DefaultKeywords when empty.
	Keywords []string
	// Templates defaults to detectors.DefaultTemplates when nil.
	Templates      []detectors.Template
	IgnorePatterns []string

	IncludeGlobs    []string
	ExcludeGlobs    []string
	GlobSyntax      GlobSyntax
	DefaultExcludes bool

	// MaxLength <= 0 disables the line length limit.
	MaxLength int
	// MaxFiles <= 0 means no ceiling.
	MaxFiles int
	// Workers > 1 evaluates files concurrently; findings keep walk order.
	Workers int

	Logger   logrus.FieldLogger
	Progress func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings      []types.Finding
	FilesExamined int
	// Truncated is set when the walk stopped at the MaxFiles ceiling while
	// eligible files remained.
	Truncated bool
	Duration  time.Duration
}

// Digest returns a stable hash of the ordered findings. Two scans of an
// unchanged tree with the same configuration produce the same digest.
func (r Result) Digest() string {
	h := xxhash.New()
	for _, f := range r.Findings {
		_, _ = h.WriteString(f.File)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.Itoa(f.Line))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(f.Detector)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(f.Target)
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// plan is everything compiled from Config before the walk begins.
type plan struct {
	detectors []detectors.Detector
	suppress  ignore.Matcher
	paths     PathFilter
}

func newPlan(cfg Config) (plan, error) {
	words := cfg.Keywords
	if len(words) == 0 {
		words = detectors.DefaultKeywords()
	}
	dets, err := detectors.Build(words, cfg.Templates)
	if err != nil {
		return plan{}, err
	}
	sup, err := ignore.Compile(cfg.IgnorePatterns)
	if err != nil {
		return plan{}, fmt.Errorf("%w: %w", detectors.ErrConfiguration, err)
	}
	syntax := cfg.GlobSyntax
	if syntax == "" {
		syntax = GlobShell
	}
	pf, err := NewPathFilter(cfg.IncludeGlobs, cfg.ExcludeGlobs, syntax)
	if err != nil {
		return plan{}, err
	}
	return plan{detectors: dets, suppress: sup, paths: pf}, nil
}

// Scan runs a scan and returns only findings (without stats).
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats compiles the configuration, walks cfg.Root and returns the
// findings along with the examined-file counter. Configuration errors are
// reported before any file is opened. Hitting the ceiling is not an error.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if cfg.Root == "" {
		return Result{}, fmt.Errorf("%w: no root to scan", detectors.ErrConfiguration)
	}
	p, err := newPlan(cfg)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(logrus.Fields{
		"root":      cfg.Root,
		"detectors": len(p.detectors),
		"ignores":   p.suppress.Len(),
		"max_files": cfg.MaxFiles,
	}).Debug("scan starting")

	started := time.Now()
	st := &scanState{cfg: cfg, plan: p, log: log}
	if cfg.Workers > 1 {
		err = st.runParallel(ctx)
	} else {
		err = st.runSequential(ctx)
	}
	res := Result{
		Findings:      st.findings,
		FilesExamined: st.examined,
		Truncated:     st.truncated,
		Duration:      time.Since(started),
	}
	if err != nil {
		return res, err
	}
	log.WithFields(logrus.Fields{
		"examined":  res.FilesExamined,
		"findings":  len(res.Findings),
		"truncated": res.Truncated,
		"digest":    res.Digest(),
	}).Debug("scan finished")
	return res, nil
}

// errCeiling stops the walk once the file ceiling is reached.
var errCeiling = errors.New("file ceiling reached")
