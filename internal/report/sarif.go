package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/passdig/passdig/internal/types"
)

const infoURI = "https://github.com/passdig/passdig"

var ruleDescriptions = map[string]string{
	"assignment": "Credential keyword assigned a quoted literal",
	"url":        "Credential keyword followed by an inline value",
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer. Each
// detector becomes a rule; SARIF lines are 1-based. An empty version leaves
// the driver version unset.
func WriteSARIF(w io.Writer, findings []types.Finding, version string) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("passdig", infoURI)
	if version != "" {
		run.Tool.Driver.Version = &version
	}
	seen := map[string]bool{}
	for _, f := range findings {
		rule := f.Detector
		if rule == "" {
			rule = "keyword"
		}
		if !seen[rule] {
			seen[rule] = true
			desc := ruleDescriptions[rule]
			if desc == "" {
				desc = "Custom credential template " + rule
			}
			run.AddRule(rule).WithDescription(desc)
		}
		run.CreateResultForRule(rule).
			WithLevel("error").
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("Possible hardcoded credential: %s", f.Target))).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(filepath.ToSlash(f.File))).
						WithRegion(sarif.NewSimpleRegion(f.Line+1, f.Line+1)),
				),
			)
	}
	rep.AddRun(run)
	return rep.PrettyWrite(w)
}
