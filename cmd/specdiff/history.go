package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/specdiff/internal/output"
	"github.com/gorewood/specdiff/internal/report"
)

// newHistoryCmd creates the history command.
func newHistoryCmd() *cobra.Command {
	return newHistoryCmdInternal(nil)
}

// newHistoryCmdInternal creates the history command with optional updater
// injection.
func newHistoryCmdInternal(up *report.Updater) *cobra.Command {
	var flags pathFlags
	var lastFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded report entries",
		Long: `List the entries recorded in the report, oldest first.

The listing is best-effort: it scans section headers and reference lines
from the report text. Only the "Head ref:" line is contractual;
everything else is display.

Examples:
  specdiff history             # All entries as a table
  specdiff history --last 5    # Only the five most recent
  specdiff history --json      # Entries as a JSON array`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, up, flags, lastFlag)
		},
	}

	addPathFlags(cmd, &flags)
	cmd.Flags().IntVar(&lastFlag, "last", 0, "Show only the last N entries")

	return cmd
}

// runHistory executes the history command.
func runHistory(cmd *cobra.Command, up *report.Updater, flags pathFlags, last int) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if last < 0 {
		err := output.NewUsageError("--last must be zero or a positive integer")
		printer.Error(err)
		return err
	}

	up, err := ensureUpdater(cmd, up, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	entries, err := up.Entries()
	if err != nil {
		printer.Error(err)
		return err
	}
	if last > 0 && len(entries) > last {
		entries = entries[len(entries)-last:]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(entries)
	}

	if len(entries) == 0 {
		printer.Println("No entries recorded. Run 'specdiff init' to record a baseline.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp, shortRef(e.BaseRef), shortRef(e.HeadRef)})
	}
	printer.Table([]string{"TIMESTAMP", "BASE", "HEAD"}, rows)
	return nil
}
