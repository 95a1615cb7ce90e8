// Package detectors builds the keyword alternation and compiles it together
// with the structural templates into the regular expressions that the engine
// runs against every line. Detectors are immutable after compilation and can
// be shared across goroutines.
package detectors
