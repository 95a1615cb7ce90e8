// Package core provides a small, stable facade over passdig's internal
// engine for external integrations. It re-exports a narrow API surface so
// other tools can depend on a stable import path without importing internal
// packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", MaxLength: 1000}
//	findings, err := core.Scan(ctx, cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
