package report

import (
	"encoding/json"
	"io"

	"github.com/passdig/passdig/internal/types"
)

// WriteJSON pretty-prints findings as an array of {file, target, line,
// string} records. An empty scan yields [] rather than null.
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// ShouldFail reports whether the scan must exit non-zero: any finding fails.
func ShouldFail(findings []types.Finding) bool {
	return len(findings) > 0
}
