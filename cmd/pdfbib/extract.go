package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bibkit/pdfbib/internal/bibtex"
	"github.com/bibkit/pdfbib/internal/extract"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract a bibliography entry from a PDF",
	Long: `Extract a bibliography entry from a PDF and print it to stdout.

The external tool is run on the PDF, its output is cleaned up, and the
entry's citation key is regenerated from the first author's surname and the
year before printing.

With no argument, the single PDF in the working directory is used when
exactly one exists; otherwise a path is prompted for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := mustResolveInput(args)
	entry := mustExtractEntry(extract.Tool{Command: cfg.Tool}, path)

	rewritten, key, err := bibtex.Rekey(entry)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		return outputJSON(ExtractResponse{
			Status: "extracted",
			Key:    key,
			Source: path,
			Entry:  rewritten,
		})
	}

	fmt.Println(rewritten)
	statusLine("extracted %s from %s", key, path)
	return nil
}
