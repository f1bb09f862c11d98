package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// touch creates an empty file and returns its path.
func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"paper.pdf", true},
		{"paper.PDF", true},
		{"dir/paper.Pdf", true},
		{"paper.pdf.txt", false},
		{"paper", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPDF(tt.path); got != tt.want {
				t.Errorf("IsPDF(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathArg(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, dir, "paper.pdf")

	got, ok, err := PathArg{Path: pdf}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if got != pdf {
		t.Errorf("Resolve() = %q, want %q", got, pdf)
	}
}

func TestPathArg_Empty(t *testing.T) {
	_, ok, err := PathArg{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() ok = true, want false for empty path")
	}
}

func TestPathArg_NotPDF(t *testing.T) {
	dir := t.TempDir()
	txt := touch(t, dir, "notes.txt")

	_, _, err := PathArg{Path: txt}.Resolve()
	if err == nil {
		t.Error("Resolve() error = nil, want error for non-PDF argument")
	}
}

func TestPathArg_Missing(t *testing.T) {
	_, _, err := PathArg{Path: filepath.Join(t.TempDir(), "absent.pdf")}.Resolve()
	if err == nil {
		t.Error("Resolve() error = nil, want error for missing file")
	}
}

func TestDirListing_SinglePDF(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, dir, "only.pdf")
	touch(t, dir, "notes.txt")

	got, ok, err := DirListing{Dir: dir}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ok {
		t.Fatal("Resolve() ok = false, want true for a single PDF")
	}
	if got != pdf {
		t.Errorf("Resolve() = %q, want %q", got, pdf)
	}
}

func TestDirListing_NoPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")

	_, ok, err := DirListing{Dir: dir}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() ok = true, want false for no PDFs")
	}
}

func TestDirListing_SeveralPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	touch(t, dir, "b.pdf")

	_, ok, err := DirListing{Dir: dir}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() ok = true, want false for an ambiguous listing")
	}
}

func TestDirListing_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "papers.pdf"), 0755); err != nil {
		t.Fatal(err)
	}
	pdf := touch(t, dir, "real.pdf")

	got, ok, err := DirListing{Dir: dir}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ok || got != pdf {
		t.Errorf("Resolve() = %q, %v; want %q, true", got, ok, pdf)
	}
}

func TestPrompt(t *testing.T) {
	dir := t.TempDir()
	pdf := touch(t, dir, "paper.pdf")

	var out strings.Builder
	got, ok, err := Prompt{In: strings.NewReader(pdf + "\n"), Out: &out}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if got != pdf {
		t.Errorf("Resolve() = %q, want %q", got, pdf)
	}
	if !strings.Contains(out.String(), "PDF file:") {
		t.Errorf("Resolve() should print a prompt, got %q", out.String())
	}
}

func TestPrompt_EmptyInput(t *testing.T) {
	var out strings.Builder
	_, ok, err := Prompt{In: strings.NewReader("\n"), Out: &out}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() ok = true, want false for empty input")
	}
}

func TestPrompt_EOF(t *testing.T) {
	var out strings.Builder
	_, ok, err := Prompt{In: strings.NewReader(""), Out: &out}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ok {
		t.Error("Resolve() ok = true, want false on EOF")
	}
}

func TestPrompt_NotPDF(t *testing.T) {
	var out strings.Builder
	_, _, err := Prompt{In: strings.NewReader("notes.txt\n"), Out: &out}.Resolve()
	if err == nil {
		t.Error("Resolve() error = nil, want error for non-PDF input")
	}
}

// canned is a test resolver with fixed results.
type canned struct {
	name string
	path string
	ok   bool
	err  error
}

func (c canned) Name() string { return c.name }

func (c canned) Resolve() (string, bool, error) { return c.path, c.ok, c.err }

func TestFirst(t *testing.T) {
	got, err := First(
		canned{name: "a"},
		canned{name: "b", path: "b.pdf", ok: true},
		canned{name: "c", path: "c.pdf", ok: true},
	)
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if got != "b.pdf" {
		t.Errorf("First() = %q, want the first hit %q", got, "b.pdf")
	}
}

func TestFirst_NoHit(t *testing.T) {
	_, err := First(canned{name: "a"}, canned{name: "b"})
	if !errors.Is(err, ErrNoFile) {
		t.Errorf("First() error = %v, want ErrNoFile", err)
	}
}

func TestFirst_ErrorAbortsChain(t *testing.T) {
	boom := errors.New("boom")
	_, err := First(
		canned{name: "a", err: boom},
		canned{name: "b", path: "b.pdf", ok: true},
	)
	if !errors.Is(err, boom) {
		t.Errorf("First() error = %v, want the resolver error", err)
	}
	if err != nil && !strings.Contains(err.Error(), "a:") {
		t.Errorf("First() error should name the failing resolver, got %v", err)
	}
}
