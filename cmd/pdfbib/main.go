// Package main provides the pdfbib CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bibkit/pdfbib/internal/config"
	"github.com/bibkit/pdfbib/internal/extract"
	"github.com/bibkit/pdfbib/internal/logging"
	"github.com/bibkit/pdfbib/internal/source"
)

// Version is set at build time via ldflags
var Version = "dev"

// jsonOutput controls whether to emit JSON instead of human-readable output
var jsonOutput bool

// verbose enables debug-level diagnostics
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like unknown flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pdfbib",
	Short: "Extract bibliography entries from PDFs",
	Long: `pdfbib wraps an external pdf2bib-style tool to pull BibTeX entries
out of PDF files.

Core features:
  - Extract an entry from a PDF and print it (extract)
  - Append an entry to a bibliography file with duplicate detection (add)
  - Regenerate the citation key of an entry in place (rekey)

Entries are plain text end to end: keys are rewritten by regex substitution
and the bibliography file is only ever appended to. Output is human-readable
by default; pass --json for structured output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logging.Configure(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of human-readable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustResolveInput picks the PDF to operate on: the explicit argument when
// given, else the single PDF in the working directory, else an interactive
// prompt. Exits when nothing resolves.
func mustResolveInput(args []string) string {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	path, err := source.First(
		source.PathArg{Path: arg},
		source.DirListing{},
		source.Prompt{In: os.Stdin, Out: os.Stderr},
	)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}
	return path
}

// mustExtractEntry pulls an entry out of the PDF via the given extractor,
// exits on any extraction failure.
func mustExtractEntry(ex extract.Extractor, path string) string {
	entry, err := ex.Extract(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return entry
}
