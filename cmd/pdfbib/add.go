package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bibkit/pdfbib/internal/bibfile"
	"github.com/bibkit/pdfbib/internal/bibtex"
	"github.com/bibkit/pdfbib/internal/config"
	"github.com/bibkit/pdfbib/internal/extract"
)

var addBibFile string

func init() {
	addCmd.Flags().StringVar(&addBibFile, "bib", "", "Bibliography file to append to (overrides config)")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [pdf]",
	Short: "Add a PDF's bibliography entry to a bibliography file",
	Long: `Extract a bibliography entry from a PDF and append it to a
bibliography file.

The target file is scanned for an entry with the same doi first; when one
exists, its key and line are reported and nothing is appended. Otherwise the
entry's citation key is regenerated and the entry is appended, separated by
a blank line.

The target file comes from --bib, then the configured bib_file, then an
interactive prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := mustResolveInput(args)
	entry := mustExtractEntry(extract.Tool{Command: cfg.Tool}, path)
	bibPath := resolveBibFile(cfg)

	doi, _ := bibtex.Field(entry, "doi")
	match, found, err := bibfile.FindDOI(bibPath, doi)
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", bibPath, err)
	}
	if found {
		// An existing entry is a success, not an error: point the user at it.
		if jsonOutput {
			return outputJSON(AddResponse{
				Status:  "duplicate",
				Key:     match.Key,
				Line:    match.Line,
				BibFile: bibPath,
			})
		}
		fmt.Printf("already in %s: %s (line %d)\n", bibPath, match.Key, match.Line)
		return nil
	}

	rewritten, key, err := bibtex.Rekey(entry)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := bibfile.Append(bibPath, rewritten); err != nil {
		exitWithError(ExitError, "appending to %s: %v", bibPath, err)
	}

	if jsonOutput {
		return outputJSON(AddResponse{Status: "added", Key: key, BibFile: bibPath})
	}
	fmt.Printf("added %s to %s\n", key, bibPath)
	return nil
}

// resolveBibFile picks the target bibliography file: the --bib flag, the
// configured default, then an interactive prompt. Exits when none is given.
func resolveBibFile(cfg *config.Config) string {
	if addBibFile != "" {
		return config.ExpandTilde(addBibFile)
	}
	if cfg.BibFile != "" {
		return cfg.BibFile
	}

	fmt.Fprint(os.Stderr, "Bibliography file: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	path := strings.TrimSpace(line)
	if path == "" {
		exitWithError(ExitConfigError, "no bibliography file given (set one with 'pdfbib config bib-file <path>')")
	}
	return config.ExpandTilde(path)
}
