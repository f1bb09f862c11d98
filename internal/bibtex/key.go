package bibtex

import (
	"crypto/rand"
	"strings"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz"

// suffixLen is the number of random letters appended to every generated key.
const suffixLen = 2

// NewKey builds a citation key from a surname and a year, suffixed with
// random lowercase letters so that repeated generation for the same paper
// yields distinct keys. The surname is lowercased but otherwise taken
// verbatim, spaces included.
func NewKey(surname, year string) string {
	return strings.ToLower(surname) + year + "-" + randSuffix(suffixLen)
}

// randSuffix returns n random lowercase letters, panicking when the system
// entropy source is unavailable.
func randSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("bibtex: entropy source unavailable: " + err.Error())
	}
	b := make([]byte, n)
	for i := range buf {
		b[i] = suffixAlphabet[int(buf[i])%len(suffixAlphabet)]
	}
	return string(b)
}
