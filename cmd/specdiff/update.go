package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/specdiff/internal/output"
	"github.com/gorewood/specdiff/internal/report"
)

// newUpdateCmd creates the update command.
func newUpdateCmd() *cobra.Command {
	return newUpdateCmdInternal(nil)
}

// newUpdateCmdInternal creates the update command with optional updater
// injection. If up is nil, one is resolved from the repository when the
// command runs.
func newUpdateCmdInternal(up *report.Updater) *cobra.Command {
	var flags pathFlags
	var baseFlag string
	var noWorktreeFlag bool
	var patchFlag bool
	var stdoutFlag bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Append a diff entry against the recorded baseline",
		Long: `Diff the scope against the recorded baseline and append the result.

The baseline is the last "Head ref:" recorded in the report, or an
explicit --base reference. By default the comparison includes the
working tree, so uncommitted edits show up; --no-worktree compares
committed history only.

Examples:
  specdiff update                  # Diff against the last recorded head
  specdiff update --base v1.2.0    # Diff against an explicit reference
  specdiff update --patch          # Embed per-file diffs in the entry
  specdiff update --stdout         # Print the entry without writing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := report.UpdateOptions{
				BaseRef:      baseFlag,
				NoWorktree:   noWorktreeFlag,
				IncludePatch: patchFlag,
			}
			return runUpdate(cmd, up, flags, opts, stdoutFlag)
		},
	}

	addPathFlags(cmd, &flags)
	cmd.Flags().StringVar(&baseFlag, "base", "", "Base git reference (default: last recorded head)")
	cmd.Flags().BoolVar(&noWorktreeFlag, "no-worktree", false, "Compare committed history only, ignoring the working tree")
	cmd.Flags().BoolVar(&patchFlag, "patch", false, "Embed per-file diffs in the entry")
	cmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "Print the entry instead of writing the report")

	return cmd
}

// runUpdate executes the update command.
func runUpdate(cmd *cobra.Command, up *report.Updater, flags pathFlags, opts report.UpdateOptions, toStdout bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	up, err := ensureUpdater(cmd, up, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	entry, err := up.Update(opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if toStdout {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"action":   "update",
				"entry":    entry.Render(),
				"base_ref": entry.BaseRef,
				"head_ref": entry.HeadRef,
			})
		}
		printer.Print("%s", entry.Render())
		return nil
	}

	if err := up.Append(entry); err != nil {
		printer.Error(err)
		return err
	}

	summary := entry.Summary
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"action":   "update",
			"report":   up.ReportPath(),
			"base_ref": entry.BaseRef,
			"head_ref": entry.HeadRef,
			"added":    len(summary.Added),
			"modified": len(summary.Modified),
			"deleted":  len(summary.Deleted),
			"renamed":  len(summary.Renamed),
		})
	}

	if summary.Empty() {
		printer.Print("No changes in %s since %s\n", up.Scope(), shortRef(entry.BaseRef))
		return nil
	}
	printer.Print("Recorded %d added, %d modified, %d deleted, %d renamed in %s\n",
		len(summary.Added), len(summary.Modified), len(summary.Deleted), len(summary.Renamed),
		up.ReportPath())
	return nil
}
