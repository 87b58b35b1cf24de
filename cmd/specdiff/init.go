// Package main provides the entry point for the specdiff CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/specdiff/internal/output"
	"github.com/gorewood/specdiff/internal/report"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	return newInitCmdInternal(nil)
}

// newInitCmdInternal creates the init command with optional updater
// injection. If up is nil, one is resolved from the repository when the
// command runs.
func newInitCmdInternal(up *report.Updater) *cobra.Command {
	var flags pathFlags
	var stdoutFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Record the current HEAD as the report baseline",
		Long: `Record the current HEAD as the baseline for future updates.

Creates the report file (with its header) when missing and appends a
baseline entry with no diff. Later runs of 'specdiff update' diff the
scope against the most recently recorded head.

Examples:
  specdiff init                        # Append a baseline entry
  specdiff init --stdout               # Print the entry without writing
  specdiff init --report notes/sd.md   # Use a different report file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, up, flags, stdoutFlag)
		},
	}

	addPathFlags(cmd, &flags)
	cmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "Print the entry instead of writing the report")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, up *report.Updater, flags pathFlags, toStdout bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	up, err := ensureUpdater(cmd, up, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	entry, err := up.Init()
	if err != nil {
		printer.Error(err)
		return err
	}

	// Print-only mode has no side effects: the report is not created.
	if toStdout {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"action":   "init",
				"entry":    entry.Render(),
				"head_ref": entry.HeadRef,
			})
		}
		printer.Print("%s", entry.Render())
		return nil
	}

	if baseline, baseErr := up.Baseline(); baseErr == nil && baseline != "" {
		printer.Warn("baseline already recorded (%s); appending another", shortRef(baseline))
	}

	if err := up.Append(entry); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"action":   "init",
			"report":   up.ReportPath(),
			"scope":    up.Scope(),
			"head_ref": entry.HeadRef,
		})
	}

	printer.Print("Recorded baseline %s in %s\n", shortRef(entry.HeadRef), up.ReportPath())
	return nil
}
