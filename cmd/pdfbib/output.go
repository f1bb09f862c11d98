package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// statusLine writes a one-line status message to stderr in human mode, so
// stdout stays clean for entry text.
func statusLine(format string, args ...interface{}) {
	if !jsonOutput {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExtractResponse is the response for the extract command.
type ExtractResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Source string `json:"source"`
	Entry  string `json:"entry"`
}

// AddResponse is the response for the add command. Line is set only on the
// duplicate path and points at the existing entry's header.
type AddResponse struct {
	Status  string `json:"status"`
	Key     string `json:"key"`
	Line    int    `json:"line,omitempty"`
	BibFile string `json:"bib_file"`
}

// RekeyResponse is the response for the rekey command.
type RekeyResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	File   string `json:"file"`
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	BibFile string `json:"bib_file,omitempty"`
	Tool    string `json:"tool,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}
