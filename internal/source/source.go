// Package source resolves which document an operation acts on. Each Resolver
// stands in for one of the contexts a user works from: an explicitly named
// file, a directory listing, or an interactive prompt. Resolvers are tried in
// a fixed priority order and the first hit wins.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibkit/pdfbib/internal/logging"
)

// ErrNoFile is returned when no resolver produced a document path.
var ErrNoFile = errors.New("no PDF file selected")

// Resolver yields a document path from one kind of context. ok is false when
// the context does not apply and the next resolver should be tried; err
// reports a real failure that aborts the whole chain.
type Resolver interface {
	Name() string
	Resolve() (path string, ok bool, err error)
}

// First walks the resolvers in priority order and returns the first hit.
func First(resolvers ...Resolver) (string, error) {
	for _, r := range resolvers {
		path, ok, err := r.Resolve()
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.Name(), err)
		}
		if ok {
			logging.Logger.Debugf("input resolved by %s: %s", r.Name(), path)
			return path, nil
		}
	}
	return "", ErrNoFile
}

// IsPDF reports whether the path carries a .pdf suffix, case-insensitively.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PathArg resolves an explicitly named document. An empty path means no
// argument was given; a named path must exist and be a PDF.
type PathArg struct {
	Path string
}

func (p PathArg) Name() string { return "argument" }

func (p PathArg) Resolve() (string, bool, error) {
	if p.Path == "" {
		return "", false, nil
	}
	if !IsPDF(p.Path) {
		return "", false, fmt.Errorf("%s is not a .pdf file", p.Path)
	}
	if _, err := os.Stat(p.Path); err != nil {
		return "", false, err
	}
	return p.Path, true, nil
}

// DirListing resolves the single PDF inside a directory, standing in for the
// item under the cursor in a file listing. Zero or several PDFs are
// ambiguous and fall through to the next resolver.
type DirListing struct {
	// Dir is the directory to scan; empty means the working directory.
	Dir string
}

func (d DirListing) Name() string { return "directory listing" }

func (d DirListing) Resolve() (string, bool, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, err
	}

	var pdfs []string
	for _, entry := range entries {
		if !entry.IsDir() && IsPDF(entry.Name()) {
			pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
		}
	}
	if len(pdfs) != 1 {
		return "", false, nil
	}
	return pdfs[0], true, nil
}

// Prompt asks the user for a document path. Empty input means the user
// declined; anything else must name an existing PDF.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Name() string { return "prompt" }

func (p Prompt) Resolve() (string, bool, error) {
	fmt.Fprint(p.Out, "PDF file: ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	path := strings.TrimSpace(strings.TrimRight(line, "\r\n"))
	if path == "" {
		return "", false, nil
	}
	if !IsPDF(path) {
		return "", false, fmt.Errorf("%s is not a .pdf file", path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", false, err
	}
	return path, true, nil
}
