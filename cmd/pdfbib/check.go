package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bibkit/pdfbib/internal/bibfile"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the tool and bibliography file setup",
	Long: `Verify the environment: the external extraction tool resolves on
PATH, the configured bibliography file is readable, and its entries carry
no duplicate dois.`,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status   string       `json:"status"`
	Tool     string       `json:"tool"`
	ToolPath string       `json:"tool_path,omitempty"`
	BibFile  string       `json:"bib_file,omitempty"`
	Entries  int          `json:"entries"`
	Issues   []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string   `json:"type"`
	DOI    string   `json:"doi,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	var issues []CheckIssue

	toolPath, err := exec.LookPath(cfg.Tool)
	if err != nil {
		issues = append(issues, CheckIssue{
			Type:   "tool_not_found",
			Reason: fmt.Sprintf("%q not found on PATH", cfg.Tool),
		})
	}

	entries := 0
	if cfg.BibFile != "" {
		if _, err := os.Stat(cfg.BibFile); err != nil {
			// A missing file is fine: add creates it on first append.
			if !os.IsNotExist(err) {
				issues = append(issues, CheckIssue{Type: "bib_file_unreadable", Reason: err.Error()})
			}
		} else {
			entries, err = bibfile.CountEntries(cfg.BibFile)
			if err != nil {
				issues = append(issues, CheckIssue{Type: "bib_file_unreadable", Reason: err.Error()})
			}

			dups, err := bibfile.DuplicateDOIs(cfg.BibFile)
			if err == nil {
				for doi, matches := range dups {
					keys := make([]string, len(matches))
					for i, m := range matches {
						keys[i] = m.Key
					}
					issues = append(issues, CheckIssue{Type: "duplicate_doi", DOI: doi, Keys: keys})
				}
			}
		}
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}

	// Ensure issues is an empty array, not null
	if issues == nil {
		issues = []CheckIssue{}
	}

	if jsonOutput {
		return outputJSON(CheckResult{
			Status:   status,
			Tool:     cfg.Tool,
			ToolPath: toolPath,
			BibFile:  cfg.BibFile,
			Entries:  entries,
			Issues:   issues,
		})
	}

	if toolPath != "" {
		fmt.Printf("tool:     %s (%s)\n", cfg.Tool, toolPath)
	} else {
		fmt.Printf("tool:     %s (not found)\n", cfg.Tool)
	}
	if cfg.BibFile != "" {
		fmt.Printf("bib file: %s (%d entries)\n", cfg.BibFile, entries)
	} else {
		fmt.Printf("bib file: not configured\n")
	}

	if len(issues) == 0 {
		fmt.Printf("status:   ok\n")
		return nil
	}
	fmt.Printf("status:   %d issues found\n\n", len(issues))
	for _, issue := range issues {
		switch issue.Type {
		case "tool_not_found":
			fmt.Printf("  [WARN] %s\n", issue.Reason)
		case "bib_file_unreadable":
			fmt.Printf("  [WARN] bibliography file unreadable: %s\n", issue.Reason)
		case "duplicate_doi":
			fmt.Printf("  [WARN] duplicate doi %s in %s\n", issue.DOI, strings.Join(issue.Keys, ", "))
		}
	}
	return nil
}
