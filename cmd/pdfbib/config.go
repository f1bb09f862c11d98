package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bibkit/pdfbib/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  pdfbib config                       # Show effective config
  pdfbib config bib-file              # Get specific value
  pdfbib config bib-file ~/refs.bib   # Set value
  pdfbib config tool getbib           # Set extraction tool

Keys:
  bib-file  Default bibliography file for 'add'
  tool      External extraction command (default pdf2bib)

Values are stored in ~/.config/pdfbib/config.yml; the PDFBIB_BIB_FILE and
PDFBIB_TOOL environment variables override them at runtime.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	// No args: show the effective config
	if len(args) == 0 {
		cfg := mustLoadConfig()
		if jsonOutput {
			return outputJSON(ConfigResponse{BibFile: cfg.BibFile, Tool: cfg.Tool})
		}
		fmt.Printf("bib-file: %s\n", cfg.BibFile)
		fmt.Printf("tool:     %s\n", cfg.Tool)
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get a single value
	if len(args) == 1 {
		cfg := mustLoadConfig()
		var value string
		switch key {
		case "bib-file":
			value = cfg.BibFile
		case "tool":
			value = cfg.Tool
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if jsonOutput {
			return outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		fmt.Println(value)
		return nil
	}

	// Two args: set a value. The raw file is edited rather than the effective
	// config so environment overrides never get persisted.
	value := args[1]
	cfg, err := config.LoadFile(config.Path())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	switch key {
	case "bib-file":
		cfg.BibFile = value
	case "tool":
		if value == "" {
			exitWithError(ExitError, "tool cannot be empty")
		}
		cfg.Tool = value
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := config.Save(cfg); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if jsonOutput {
		return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	fmt.Printf("Updated %s to %s\n", key, value)
	return nil
}

// normalizeKey converts key formats (bib_file, BIB-FILE) to the bib-file form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
