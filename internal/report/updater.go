// Package report computes scoped git diffs and records them as
// append-only entries in a markdown report file.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gorewood/specdiff/internal/git"
	"github.com/gorewood/specdiff/internal/output"
)

// GitOps defines the git operations required by Updater. The production
// implementation shells out to git; tests substitute canned results so
// parsing and rendering run without a repository.
//
// An empty head means "compare base against the working tree".
type GitOps interface {
	HEAD() (string, error)
	NameStatus(base, head, scope string) ([]git.Change, error)
	FileDiff(base, head, path string) (string, error)
}

// realGitOps implements GitOps using the git package, anchored at a
// repository root so scope pathspecs resolve consistently.
type realGitOps struct {
	root string
}

func (g realGitOps) HEAD() (string, error) {
	sha, err := git.RunDir(context.Background(), g.root, "rev-parse", "HEAD")
	if err != nil {
		return "", output.NewRuntimeErrorWithCause("failed to get HEAD", err)
	}
	return sha, nil
}

func (g realGitOps) NameStatus(base, head, scope string) ([]git.Change, error) {
	return git.NameStatus(g.root, base, head, scope)
}

func (g realGitOps) FileDiff(base, head, path string) (string, error) {
	return git.FileDiff(g.root, base, head, path)
}

// GitAt returns GitOps backed by the git subprocess for the repository
// rooted at root.
func GitAt(root string) GitOps {
	return realGitOps{root: root}
}

// UpdateOptions control one update run.
type UpdateOptions struct {
	// BaseRef overrides the baseline recorded in the report.
	BaseRef string
	// NoWorktree compares committed history only (base..HEAD) and
	// ignores uncommitted changes.
	NoWorktree bool
	// IncludePatch embeds per-file diff text in the entry.
	IncludePatch bool
}

// Updater builds report entries for one repository. It holds the
// resolved configuration explicitly so the diff and rendering logic
// stays testable without environment coupling.
type Updater struct {
	git      GitOps
	report   string   // absolute path of the report file
	scope    string   // repository-relative scope, forward slashes
	excludes []string // repository-relative paths dropped from every diff
	now      func() time.Time
}

// NewUpdater creates an Updater over the given git operations and
// resolved paths.
func NewUpdater(ops GitOps, reportPath, scope string, excludes []string) *Updater {
	return &Updater{
		git:      ops,
		report:   reportPath,
		scope:    scope,
		excludes: excludes,
		now:      time.Now,
	}
}

// Init builds a baseline entry recording the current HEAD as both base
// and head, without computing a diff. The entry is not written; use
// Append for that.
func (u *Updater) Init() (*Entry, error) {
	head, err := u.git.HEAD()
	if err != nil {
		return nil, err
	}
	return &Entry{
		Timestamp: u.now().UTC(),
		BaseRef:   head,
		HeadRef:   head,
		Scope:     u.scope,
		Baseline:  true,
	}, nil
}

// Update builds a diff entry against the resolved baseline. The base
// reference comes from opts.BaseRef when set, otherwise from the last
// recorded head in the report. With no baseline from either source the
// update fails as a usage error rather than picking a reference.
func (u *Updater) Update(opts UpdateOptions) (*Entry, error) {
	head, err := u.git.HEAD()
	if err != nil {
		return nil, err
	}

	base := opts.BaseRef
	if base == "" {
		base, err = u.Baseline()
		if err != nil {
			return nil, err
		}
	}
	if base == "" {
		return nil, output.NewUsageError(
			"no base ref found: run `specdiff init` once, or pass an explicit --base <git-ref>")
	}

	// An empty diff head means the working tree is included.
	diffHead := ""
	if opts.NoWorktree {
		diffHead = head
	}

	changes, err := u.git.NameStatus(base, diffHead, u.scope)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Timestamp:        u.now().UTC(),
		BaseRef:          base,
		HeadRef:          head,
		Scope:            u.scope,
		IncludesWorktree: !opts.NoWorktree,
		Excludes:         u.excludes,
		Summary:          BuildSummary(changes, u.excludes),
	}

	if opts.IncludePatch && !entry.Summary.Empty() {
		entry.Patches = u.collectPatches(base, diffHead, entry.Summary)
	}
	return entry, nil
}

// collectPatches gathers per-file diffs for Added, Modified, and Deleted
// paths in that order. A failed per-file diff becomes an inline error
// line instead of aborting the entry.
func (u *Updater) collectPatches(base, head string, s Summary) []Patch {
	paths := make([]string, 0, len(s.Added)+len(s.Modified)+len(s.Deleted))
	paths = append(paths, s.Added...)
	paths = append(paths, s.Modified...)
	paths = append(paths, s.Deleted...)

	patches := make([]Patch, 0, len(paths))
	for _, p := range paths {
		text, err := u.git.FileDiff(base, head, p)
		if err != nil {
			text = fmt.Sprintf("Error generating diff for %s: %v", p, err)
		}
		patches = append(patches, Patch{Path: p, Diff: text})
	}
	return patches
}

// Append writes the rendered entry to the report file, creating the
// report with its header first when absent.
func (u *Updater) Append(e *Entry) error {
	return AppendEntry(u.report, e.Render())
}

// Head returns the repository's current HEAD commit.
func (u *Updater) Head() (string, error) {
	return u.git.HEAD()
}

// Baseline returns the last recorded head reference from the report,
// or an empty string when the report is absent or has none.
func (u *Updater) Baseline() (string, error) {
	text, err := LoadReport(u.report)
	if err != nil {
		return "", err
	}
	return LastHeadRef(text), nil
}

// Entries returns the metadata of all recorded entries in file order.
func (u *Updater) Entries() ([]EntryRef, error) {
	text, err := LoadReport(u.report)
	if err != nil {
		return nil, err
	}
	return ScanEntries(text), nil
}

// ReportPath returns the absolute path of the report file.
func (u *Updater) ReportPath() string {
	return u.report
}

// Scope returns the repository-relative scope the updater diffs.
func (u *Updater) Scope() string {
	return u.scope
}
