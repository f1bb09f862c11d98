// Package extract runs the external bibliography extraction tool and turns
// its raw output into candidate entry text. The tool is an opaque black box
// whose output contract is: first line is a status echo, the remaining lines
// form one bibliography entry.
package extract

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bibkit/pdfbib/internal/logging"
)

var (
	// ErrNoBibInfo is returned when the tool produced no entry text.
	ErrNoBibInfo = errors.New("no bib-info found")

	// ErrToolFailure is returned when the tool output signals a failure.
	ErrToolFailure = errors.New("extraction tool reported a failure")
)

// failureMarkers flag the tool output as a failure when present anywhere in
// it, case-insensitively.
var failureMarkers = []string{"error", "warning", "failed"}

// Extractor produces candidate bibliography entry text for a document.
// Implementations own the extraction mechanism; callers only ever see entry
// text or an error.
type Extractor interface {
	Extract(path string) (string, error)
}

// Tool runs a command-line extraction tool as `<command> <path>`. The call
// blocks until the tool exits; no timeout is applied, so an unresponsive
// tool blocks indefinitely.
type Tool struct {
	// Command is the executable name or path, resolved via PATH.
	Command string
}

// Extract invokes the tool on the given file and applies the output
// contract via CleanOutput.
func (t Tool) Extract(path string) (string, error) {
	logging.Logger.Debugf("running %s %s", t.Command, path)

	out, err := exec.Command(t.Command, path).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("running %s: %w: %s", t.Command, err,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("running %s: %w", t.Command, err)
	}
	return CleanOutput(string(out))
}

// CleanOutput applies the tool output contract to raw stdout: drop the first
// line unconditionally, trim surrounding whitespace, then reject an empty or
// failure-marked remainder. A single-line output therefore never yields an
// entry.
func CleanOutput(raw string) (string, error) {
	rest := ""
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		rest = raw[i+1:]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", ErrNoBibInfo
	}

	lower := strings.ToLower(rest)
	for _, marker := range failureMarkers {
		if strings.Contains(lower, marker) {
			return "", fmt.Errorf("%w: %q", ErrToolFailure, rest)
		}
	}
	return rest, nil
}

// Stub is a canned Extractor for tests: it returns fixed text or a fixed
// error regardless of the path.
type Stub struct {
	Text string
	Err  error
}

// Extract returns the stubbed text or error.
func (s Stub) Extract(string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}
