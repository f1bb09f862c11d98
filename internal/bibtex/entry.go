// Package bibtex extracts fields and manipulates citation keys in
// bibliography entries. Entries are opaque blocks of text: nothing here
// builds a structured model, and every lookup is a first-match regex over
// loosely formatted BibTeX syntax.
package bibtex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoEntryHeader is returned when text contains no @type{key, header.
	ErrNoEntryHeader = errors.New("no entry found")

	// ErrMissingAuthorYear is returned when key generation cannot find the
	// author or year field in an entry.
	ErrMissingAuthorYear = errors.New("cannot extract author or year")
)

// headerRE matches an entry header @type{key, and captures the key.
var headerRE = regexp.MustCompile(`@\w+\s*\{\s*([^,{}\n]*?)\s*,`)

// Field returns the first value assigned to the named field anywhere in the
// entry text. Values may be brace-delimited, quoted, or bare; the field name
// is matched case-insensitively. This is the single choke point for field
// extraction, so the heuristic can be swapped out without touching callers.
func Field(entry, name string) (string, bool) {
	re, err := regexp.Compile(fmt.Sprintf(
		`(?i)\b%s\s*=\s*(?:\{([^{}]*)\}|"([^"]*)"|([^,{}"\s][^,\n{}]*))`,
		regexp.QuoteMeta(name)))
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(entry)
	if m == nil {
		return "", false
	}
	for _, group := range m[1:] {
		if group != "" {
			return strings.TrimSpace(group), true
		}
	}
	// The field is present with an empty value, e.g. doi={}.
	return "", true
}

// FirstAuthorSurname extracts the family name of the first author from an
// "and"-separated author list. It understands "Last, First" and "First Last"
// forms; a single-token name is returned as is. This is a heuristic, not a
// name grammar.
func FirstAuthorSurname(authors string) string {
	first := authors
	if i := strings.Index(authors, " and "); i >= 0 {
		first = authors[:i]
	}
	first = strings.TrimSpace(first)
	if i := strings.Index(first, ","); i >= 0 {
		return strings.TrimSpace(first[:i])
	}
	if fields := strings.Fields(first); len(fields) > 1 {
		return fields[len(fields)-1]
	}
	return first
}

// Key returns the citation key of the first entry header in the text.
func Key(entry string) (string, bool) {
	m := headerRE.FindStringSubmatch(entry)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SetKey substitutes newKey into the first entry header. The returned bool
// is false, and the text unchanged, when no header is present.
func SetKey(entry, newKey string) (string, bool) {
	loc := headerRE.FindStringSubmatchIndex(entry)
	if loc == nil {
		return entry, false
	}
	return entry[:loc[2]] + newKey + entry[loc[3]:], true
}

// Rekey derives a fresh citation key from the entry's author and year fields
// and substitutes it into the header. It returns the rewritten entry and the
// new key. The author and year must both be extractable, and the entry must
// carry a header.
func Rekey(entry string) (string, string, error) {
	author, _ := Field(entry, "author")
	year, _ := Field(entry, "year")
	surname := FirstAuthorSurname(author)
	if surname == "" || year == "" {
		return "", "", ErrMissingAuthorYear
	}
	key := NewKey(surname, year)
	rewritten, ok := SetKey(entry, key)
	if !ok {
		return "", "", ErrNoEntryHeader
	}
	return rewritten, key, nil
}
