package main

// Exit codes reported by the CLI.
const (
	ExitSuccess     = 0 // Success, including the duplicate-found path of add
	ExitError       = 1 // General error (extraction, parsing, file I/O)
	ExitConfigError = 2 // Configuration error (unreadable config, no bib file)
	ExitInputError  = 3 // Input selection error (no usable PDF)
)
