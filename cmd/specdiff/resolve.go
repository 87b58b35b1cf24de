package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/specdiff/internal/config"
	"github.com/gorewood/specdiff/internal/git"
	"github.com/gorewood/specdiff/internal/output"
	"github.com/gorewood/specdiff/internal/report"
)

// pathFlags holds the --report and --scope overrides shared by the
// report and query commands.
type pathFlags struct {
	report string
	scope  string
}

// addPathFlags registers the shared path flags on a command.
func addPathFlags(cmd *cobra.Command, flags *pathFlags) {
	cmd.Flags().StringVar(&flags.report, "report", "", "Report file path (default docs/specs/spec-diff.md)")
	cmd.Flags().StringVar(&flags.scope, "scope", "", "Directory subtree to diff (default docs/specs)")
}

// ensureUpdater returns the updater, resolving one from the repository
// and effective configuration when none was injected.
func ensureUpdater(cmd *cobra.Command, up *report.Updater, flags pathFlags) (*report.Updater, error) {
	if up != nil {
		return up, nil
	}
	return resolveUpdater(cmd, flags)
}

// resolveUpdater builds an Updater from the effective configuration:
// flags override environment variables, which override .specdiff.yaml,
// which overrides built-in defaults.
func resolveUpdater(cmd *cobra.Command, flags pathFlags) (*report.Updater, error) {
	if !git.IsRepo() {
		return nil, output.NewUsageError("not inside a git repository")
	}
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("report") {
		cfg.Report = flags.report
	}
	if cmd.Flags().Changed("scope") {
		cfg.Scope = flags.scope
	}

	scope, err := config.ScopeRel(root, cfg.Scope)
	if err != nil {
		return nil, err
	}
	reportPath := config.ReportPath(root, cfg.Report)
	excludes := config.EffectiveExcludes(cfg, root, reportPath)

	return report.NewUpdater(report.GitAt(root), reportPath, scope, excludes), nil
}

// shortRef truncates a git reference for display.
func shortRef(ref string) string {
	if len(ref) > 12 {
		return ref[:12]
	}
	return ref
}
