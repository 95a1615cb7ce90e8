package core

import (
	"context"

	"github.com/passdig/passdig/internal/detectors"
	"github.com/passdig/passdig/internal/engine"
	"github.com/passdig/passdig/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result
type Template = detectors.Template

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats runs a scan and also reports how many files were examined
// and whether the file ceiling was hit.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// DefaultKeywords returns the keywords used when Config.Keywords is empty.
func DefaultKeywords() []string { return detectors.DefaultKeywords() }

// DetectorIDs returns the names of the built-in structural templates.
func DetectorIDs() []string { return detectors.IDs() }
