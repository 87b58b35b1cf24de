// Package main provides the entry point for the specdiff CLI.
package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/specdiff/internal/git"
	"github.com/gorewood/specdiff/internal/output"
	"github.com/gorewood/specdiff/internal/report"
)

// statusResult holds the data for status output.
type statusResult struct {
	Repo          string `json:"repo"`
	Branch        string `json:"branch"`
	Head          string `json:"head"`
	Report        string `json:"report"`
	ReportExists  bool   `json:"report_exists"`
	Scope         string `json:"scope"`
	Baseline      string `json:"baseline,omitempty"`
	EntryCount    int    `json:"entry_count"`
	WorktreeDirty bool   `json:"worktree_dirty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return newStatusCmdInternal(nil)
}

// newStatusCmdInternal creates the status command with optional updater
// injection.
func newStatusCmdInternal(up *report.Updater) *cobra.Command {
	var flags pathFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository and report state",
		Long: `Show the current state of the repository and the diff report.

Displays repository info (branch, HEAD, dirty worktree), the effective
report and scope paths, the recorded baseline, and the entry count.

Examples:
  specdiff status          # Show human-readable status
  specdiff status --json   # Output status as JSON for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, up, flags)
		},
	}

	addPathFlags(cmd, &flags)
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, up *report.Updater, flags pathFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	up, err := ensureUpdater(cmd, up, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := gatherStatus(up)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"repo":           result.Repo,
			"branch":         result.Branch,
			"head":           result.Head,
			"report":         result.Report,
			"report_exists":  result.ReportExists,
			"scope":          result.Scope,
			"baseline":       result.Baseline,
			"entry_count":    result.EntryCount,
			"worktree_dirty": result.WorktreeDirty,
		})
	}

	printHumanStatus(printer, result)
	return nil
}

// gatherStatus collects repository and report state.
func gatherStatus(up *report.Updater) (*statusResult, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}
	branch, err := git.CurrentBranch()
	if err != nil {
		return nil, err
	}
	head, err := git.HEAD()
	if err != nil {
		return nil, err
	}

	baseline, err := up.Baseline()
	if err != nil {
		return nil, err
	}
	entries, err := up.Entries()
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(up.ReportPath())

	return &statusResult{
		Repo:          filepath.Base(root),
		Branch:        branch,
		Head:          head,
		Report:        up.ReportPath(),
		ReportExists:  statErr == nil,
		Scope:         up.Scope(),
		Baseline:      baseline,
		EntryCount:    len(entries),
		WorktreeDirty: git.HasUncommittedChanges(),
	}, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult) {
	printer.Section("Repository")
	printer.KeyValue("Repo", status.Repo)
	printer.KeyValue("Branch", status.Branch)
	printer.KeyValue("HEAD", shortRef(status.Head))
	printer.KeyValue("Worktree dirty", formatBool(status.WorktreeDirty))

	printer.Section("Report")
	printer.KeyValue("File", status.Report)
	printer.KeyValue("Exists", formatBool(status.ReportExists))
	printer.KeyValue("Scope", status.Scope)
	if status.Baseline != "" {
		printer.KeyValue("Baseline", shortRef(status.Baseline))
	} else {
		printer.KeyValue("Baseline", "none (run 'specdiff init')")
	}
	printer.KeyValue("Entries", strconv.Itoa(status.EntryCount))
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
