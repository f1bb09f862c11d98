// Package bibfile reads and appends to a bibliography file. The file is a
// flat text store: entries are located by line-oriented regex scanning and new
// entries are appended verbatim at the end. Nothing here parses the file
// structurally or rewrites entries it did not touch.
package bibfile

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/bibkit/pdfbib/internal/bibtex"
)

// Match locates an existing entry inside a bibliography file.
type Match struct {
	// Key is the citation key from the entry header.
	Key string
	// Line is the 1-based line number of the entry header.
	Line int
}

// headerRE matches an entry header line @type{key, and captures the key.
var headerRE = regexp.MustCompile(`@\w+\s*\{\s*([^,{}\n]+?)\s*,`)

// doiLineRE matches a doi field assignment line and captures the raw value,
// delimiters included.
var doiLineRE = regexp.MustCompile(`(?i)^\s*doi\s*=\s*(.+?)\s*,?\s*$`)

// NormalizeDOI strips brace and quote delimiters and internal whitespace and
// lowercases, so that {10.1/ABC} and "10.1/abc" compare equal.
func NormalizeDOI(doi string) string {
	r := strings.NewReplacer("{", "", "}", "", `"`, "", " ", "", "\t", "")
	return strings.ToLower(r.Replace(doi))
}

// FindDOI scans the file for the first entry whose doi field matches the
// candidate after normalization on both sides. An empty candidate never
// matches anything, and a missing file holds no duplicates. The returned
// Match points at the matching entry's header line.
func FindDOI(path, doi string) (Match, bool, error) {
	want := NormalizeDOI(doi)
	if want == "" {
		return Match{}, false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Match{}, false, nil
		}
		return Match{}, false, err
	}
	defer file.Close()

	var current Match
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()

		if m := headerRE.FindStringSubmatch(line); m != nil {
			current = Match{Key: m[1], Line: n}
		}

		m := doiLineRE.FindStringSubmatch(line)
		if m == nil || current.Line == 0 {
			continue
		}
		if NormalizeDOI(m[1]) == want {
			return current, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Match{}, false, err
	}
	return Match{}, false, nil
}

// DuplicateDOIs reports doi values carried by more than one entry, keyed by
// normalized value.
func DuplicateDOIs(path string) (map[string][]Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	seen := make(map[string][]Match)
	var current Match
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()

		if m := headerRE.FindStringSubmatch(line); m != nil {
			current = Match{Key: m[1], Line: n}
		}

		m := doiLineRE.FindStringSubmatch(line)
		if m == nil || current.Line == 0 {
			continue
		}
		doi := NormalizeDOI(m[1])
		if doi == "" {
			continue
		}
		matches := seen[doi]
		if len(matches) > 0 && matches[len(matches)-1].Line == current.Line {
			continue // one entry listing the same doi twice
		}
		seen[doi] = append(seen[doi], current)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	dups := make(map[string][]Match)
	for doi, matches := range seen {
		if len(matches) > 1 {
			dups[doi] = matches
		}
	}
	return dups, nil
}

// Append writes the entry to the end of the file, preceded by a blank line so
// entries stay visually separated. The file is created when absent. No
// locking: a concurrent writer to the same file is an accepted gap.
func Append(path, entry string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString("\n" + entry + "\n")
	return err
}

// CountEntries reports how many entry headers the file contains.
func CountEntries(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if headerRE.MatchString(scanner.Text()) {
			count++
		}
	}
	return count, scanner.Err()
}

// RekeyAt regenerates the citation key of one entry inside content. cursor is
// a 1-based line number playing the editor cursor: the affected entry is the
// one whose header sits at or nearest above that line. cursor 0 selects the
// first entry in the file. Returns the rewritten content and the new key.
func RekeyAt(content string, cursor int) (string, string, error) {
	lines := strings.Split(content, "\n")

	var start, end int
	var ok bool
	if cursor <= 0 {
		start, end, ok = firstEntry(lines)
	} else {
		start, end, ok = entryAt(lines, cursor-1)
	}
	if !ok {
		return "", "", bibtex.ErrNoEntryHeader
	}

	block, key, err := bibtex.Rekey(strings.Join(lines[start:end], "\n"))
	if err != nil {
		return "", "", err
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:start]...)
	out = append(out, strings.Split(block, "\n")...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n"), key, nil
}

// entryAt returns the half-open line span [start, end) of the entry whose
// header sits at or nearest above cursor. Lines and cursor are 0-based; the
// cursor is clamped to the file.
func entryAt(lines []string, cursor int) (start, end int, ok bool) {
	if len(lines) == 0 {
		return 0, 0, false
	}
	if cursor >= len(lines) {
		cursor = len(lines) - 1
	}
	for i := cursor; i >= 0; i-- {
		if headerRE.MatchString(lines[i]) {
			return i, entryEnd(lines, i), true
		}
	}
	return 0, 0, false
}

// firstEntry returns the line span of the first entry in the file.
func firstEntry(lines []string) (start, end int, ok bool) {
	for i := range lines {
		if headerRE.MatchString(lines[i]) {
			return i, entryEnd(lines, i), true
		}
	}
	return 0, 0, false
}

// entryEnd finds where the entry starting at start stops: the next header
// line, or end-of-file.
func entryEnd(lines []string, start int) int {
	for i := start + 1; i < len(lines); i++ {
		if headerRE.MatchString(lines[i]) {
			return i
		}
	}
	return len(lines)
}
