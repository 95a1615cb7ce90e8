package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/passdig/passdig/internal/detectors"
	"github.com/passdig/passdig/internal/ignore"
	"github.com/passdig/passdig/internal/types"
)

// ErrUnreadable marks content that is not text. The exported evaluators
// never return it; they stop early and keep what was found before the bad
// line.
var ErrUnreadable = errors.New("content is not valid text")

// EvaluateFile opens path and evaluates it line by line. Errors opening or
// reading the file are returned; undecodable content is not an error.
func EvaluateFile(path string, maxLength int, dets []detectors.Detector, sup ignore.Matcher) ([]types.Finding, error) {
	out, err := evaluateFile(path, maxLength, dets, sup)
	if errors.Is(err, ErrUnreadable) {
		return out, nil
	}
	return out, err
}

// EvaluateReader runs every detector against every line of r. Lines longer
// than maxLength characters are skipped; maxLength <= 0 disables the limit.
// Each detector contributes at most one finding per line, carrying its first
// match. A line that is not valid UTF-8 or holds a NUL byte ends the
// evaluation and the findings collected so far are returned.
func EvaluateReader(path string, r io.Reader, maxLength int, dets []detectors.Detector, sup ignore.Matcher) ([]types.Finding, error) {
	out, err := evaluate(path, r, maxLength, dets, sup)
	if errors.Is(err, ErrUnreadable) {
		return out, nil
	}
	return out, err
}

func evaluateFile(path string, maxLength int, dets []detectors.Detector, sup ignore.Matcher) ([]types.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	out, err := evaluate(path, f, maxLength, dets, sup)
	if err != nil && !errors.Is(err, ErrUnreadable) {
		return out, fmt.Errorf("read %s: %w", path, err)
	}
	return out, err
}

func evaluate(path string, r io.Reader, maxLength int, dets []detectors.Detector, sup ignore.Matcher) ([]types.Finding, error) {
	var out []types.Finding
	br := bufio.NewReader(r)
	for idx := 0; ; idx++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return out, err
		}
		if raw == "" && err != nil {
			return out, nil
		}
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if !isText(line) {
			return out, fmt.Errorf("line %d: %w", idx, ErrUnreadable)
		}
		if maxLength <= 0 || utf8.RuneCountInString(line) <= maxLength {
			out = append(out, evaluateLine(path, idx, line, dets, sup)...)
		}
		if err != nil {
			return out, nil
		}
	}
}

func evaluateLine(path string, idx int, line string, dets []detectors.Detector, sup ignore.Matcher) []types.Finding {
	var out []types.Finding
	for _, d := range dets {
		target, ok := d.FirstMatch(line)
		if !ok || sup.Match(line) {
			continue
		}
		out = append(out, types.Finding{
			File:     path,
			Target:   target,
			Line:     idx,
			String:   strings.TrimSpace(line),
			Detector: d.Name,
		})
	}
	return out
}

func isText(line string) bool {
	return utf8.ValidString(line) && strings.IndexByte(line, 0) < 0
}
