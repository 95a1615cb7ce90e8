package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/passdig/passdig/internal/types"
)

// PrintOptions carries the scan statistics that the human reports print
// under the findings.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesChecked int
	// HitLimit reports that the file ceiling cut the scan short.
	HitLimit bool
}

var separator = strings.Repeat("-", 80)

// PrintText writes one block per finding, in scan order, followed by the
// summary and status lines. When no file was checked at all it prints only
// a "No file found." notice and a FAILED status.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.FilesChecked == 0 {
		fmt.Fprintln(w, "No file found.")
		fmt.Fprintln(w, statusLine(false, opts.NoColor))
		return
	}
	for _, f := range findings {
		fmt.Fprintf(w, "File:\t%s\n", f.File)
		fmt.Fprintf(w, "Line:\t%d\n", f.Line)
		fmt.Fprintf(w, "Target:\t%s\n\n", f.Target)
		fmt.Fprintln(w, f.String)
		fmt.Fprintf(w, "\n%s\n\n", separator)
	}
	printFooter(w, findings, opts)
}

// PrintTable renders findings as a bordered table with the same footer as
// PrintText.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.FilesChecked == 0 {
		fmt.Fprintln(w, "No file found.")
		fmt.Fprintln(w, statusLine(false, opts.NoColor))
		return
	}
	if len(findings) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header("File", "Line", "Detector", "Target")
		for _, f := range findings {
			_ = table.Append([]string{f.File, strconv.Itoa(f.Line), f.Detector, f.Target})
		}
		_ = table.Render()
		fmt.Fprintln(w)
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	limit := "No"
	if opts.HitLimit {
		limit = "Yes"
	}
	fmt.Fprintf(w, "Found: %d | Files Checked: %d | (Hit Upper Limit? %s)\n", len(findings), opts.FilesChecked, limit)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	fmt.Fprintln(w, statusLine(len(findings) == 0, opts.NoColor))
}

func statusLine(ok, noColor bool) string {
	word, c := "OK", color.New(color.FgGreen, color.Bold)
	if !ok {
		word, c = "FAILED", color.New(color.FgRed, color.Bold)
	}
	if noColor {
		c.DisableColor()
	}
	return "STATUS: " + c.Sprint(word)
}
