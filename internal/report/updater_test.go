package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/specdiff/internal/git"
	"github.com/gorewood/specdiff/internal/output"
)

// mockGitOps returns canned git results and records the arguments the
// updater passed in.
type mockGitOps struct {
	head       string
	headErr    error
	listing    string
	listingErr error
	fileDiffs  map[string]string
	fileErrs   map[string]error

	gotBase  string
	gotHead  string
	gotScope string

	fileDiffPaths []string
	gotFileHead   string
}

func (m *mockGitOps) HEAD() (string, error) {
	return m.head, m.headErr
}

func (m *mockGitOps) NameStatus(base, head, scope string) ([]git.Change, error) {
	m.gotBase, m.gotHead, m.gotScope = base, head, scope
	if m.listingErr != nil {
		return nil, m.listingErr
	}
	return git.ParseNameStatus(m.listing), nil
}

func (m *mockGitOps) FileDiff(base, head, path string) (string, error) {
	m.fileDiffPaths = append(m.fileDiffPaths, path)
	m.gotFileHead = head
	if err := m.fileErrs[path]; err != nil {
		return "", err
	}
	return m.fileDiffs[path], nil
}

// newTestUpdater wires a mock against a report path in a temp dir and
// pins the clock.
func newTestUpdater(t *testing.T, mock *mockGitOps) *Updater {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs", "specs", "spec-diff.md")
	u := NewUpdater(mock, path, "docs/specs", nil)
	u.now = func() time.Time { return entryTime }
	return u
}

func TestUpdater_Init(t *testing.T) {
	mock := &mockGitOps{head: "4f2a9c0aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	u := newTestUpdater(t, mock)

	entry, err := u.Init()
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if !entry.Baseline {
		t.Error("Init() entry should be a baseline entry")
	}
	if entry.BaseRef != mock.head || entry.HeadRef != mock.head {
		t.Errorf("Init() refs = %q/%q, want both %q", entry.BaseRef, entry.HeadRef, mock.head)
	}
	if entry.Scope != "docs/specs" {
		t.Errorf("Init() scope = %q, want docs/specs", entry.Scope)
	}
	if entry.IncludesWorktree {
		t.Error("baseline entries never include the worktree")
	}
}

func TestUpdater_Init_HeadFailure(t *testing.T) {
	mock := &mockGitOps{headErr: output.NewRuntimeError("failed to get HEAD")}
	u := newTestUpdater(t, mock)

	if _, err := u.Init(); err == nil {
		t.Fatal("Init() should propagate HEAD failure")
	}
}

func TestUpdater_Update_ExplicitBase(t *testing.T) {
	mock := &mockGitOps{
		head:    "headsha",
		listing: "A\tdocs/specs/new.md\nM\tdocs/specs/spec.md",
	}
	u := newTestUpdater(t, mock)

	entry, err := u.Update(UpdateOptions{BaseRef: "v1.0"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if mock.gotBase != "v1.0" {
		t.Errorf("NameStatus base = %q, want v1.0", mock.gotBase)
	}
	if mock.gotHead != "" {
		t.Errorf("NameStatus head = %q, want empty for worktree mode", mock.gotHead)
	}
	if mock.gotScope != "docs/specs" {
		t.Errorf("NameStatus scope = %q, want docs/specs", mock.gotScope)
	}

	if entry.BaseRef != "v1.0" || entry.HeadRef != "headsha" {
		t.Errorf("entry refs = %q/%q", entry.BaseRef, entry.HeadRef)
	}
	if !entry.IncludesWorktree {
		t.Error("default update should include the worktree")
	}

	want := Summary{
		Added:    []string{"docs/specs/new.md"},
		Modified: []string{"docs/specs/spec.md"},
	}
	if diff := cmp.Diff(want, entry.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdater_Update_NoWorktree(t *testing.T) {
	mock := &mockGitOps{head: "headsha", listing: ""}
	u := newTestUpdater(t, mock)

	entry, err := u.Update(UpdateOptions{BaseRef: "v1.0", NoWorktree: true})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if mock.gotHead != "headsha" {
		t.Errorf("NameStatus head = %q, want headsha for committed-only mode", mock.gotHead)
	}
	if entry.IncludesWorktree {
		t.Error("committed-only update should not claim worktree inclusion")
	}
}

func TestUpdater_Update_BaselineFromReport(t *testing.T) {
	mock := &mockGitOps{head: "newhead", listing: ""}
	u := newTestUpdater(t, mock)

	seed := "## 2026-08-20 08:00:00Z\n\nBase ref: older\nHead ref: recorded123\n"
	if err := AppendEntry(u.report, seed); err != nil {
		t.Fatal(err)
	}

	entry, err := u.Update(UpdateOptions{})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if mock.gotBase != "recorded123" {
		t.Errorf("NameStatus base = %q, want the recorded head", mock.gotBase)
	}
	if entry.BaseRef != "recorded123" {
		t.Errorf("entry.BaseRef = %q, want recorded123", entry.BaseRef)
	}
}

func TestUpdater_Update_NoBaselineIsUsageError(t *testing.T) {
	mock := &mockGitOps{head: "headsha"}
	u := newTestUpdater(t, mock)

	_, err := u.Update(UpdateOptions{})
	if err == nil {
		t.Fatal("Update() without a baseline should fail")
	}

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be *output.ExitError, got %T", err)
	}
	if exitErr.Code != output.ExitUsageError {
		t.Errorf("exit code = %d, want %d", exitErr.Code, output.ExitUsageError)
	}
	if !strings.Contains(exitErr.Message, "no base ref") {
		t.Errorf("message = %q, want baseline hint", exitErr.Message)
	}
}

func TestUpdater_Update_DiffFailurePropagates(t *testing.T) {
	mock := &mockGitOps{
		head:       "headsha",
		listingErr: output.NewRuntimeError("git command failed: bad revision 'v9'"),
	}
	u := newTestUpdater(t, mock)

	_, err := u.Update(UpdateOptions{BaseRef: "v9"})
	if err == nil {
		t.Fatal("Update() should propagate diff failure")
	}
	if !strings.Contains(err.Error(), "bad revision") {
		t.Errorf("error = %q, want git diagnostic text", err.Error())
	}
}

func TestUpdater_Update_CollectsPatchesInOrder(t *testing.T) {
	mock := &mockGitOps{
		head: "headsha",
		listing: strings.Join([]string{
			"M\tdocs/specs/spec.md",
			"A\tdocs/specs/new.md",
			"D\tdocs/specs/old.md",
			"R100\tdocs/specs/a.md\tdocs/specs/b.md",
		}, "\n"),
		fileDiffs: map[string]string{
			"docs/specs/new.md":  "diff --git a/docs/specs/new.md b/docs/specs/new.md",
			"docs/specs/spec.md": "",
		},
		fileErrs: map[string]error{
			"docs/specs/old.md": output.NewRuntimeError("git command failed: boom"),
		},
	}
	u := newTestUpdater(t, mock)

	entry, err := u.Update(UpdateOptions{BaseRef: "v1.0", IncludePatch: true})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// Added, then Modified, then Deleted; renames never get patches
	wantOrder := []string{"docs/specs/new.md", "docs/specs/spec.md", "docs/specs/old.md"}
	if diff := cmp.Diff(wantOrder, mock.fileDiffPaths); diff != "" {
		t.Errorf("patch order mismatch (-want +got):\n%s", diff)
	}
	if mock.gotFileHead != "" {
		t.Errorf("patch diffs should use worktree mode, got head %q", mock.gotFileHead)
	}

	if len(entry.Patches) != 3 {
		t.Fatalf("got %d patches, want 3", len(entry.Patches))
	}
	if entry.Patches[1].Diff != "" {
		t.Errorf("empty diff should stay empty for rendering, got %q", entry.Patches[1].Diff)
	}
	if !strings.HasPrefix(entry.Patches[2].Diff, "Error generating diff for docs/specs/old.md:") {
		t.Errorf("failed patch should downgrade to an error line, got %q", entry.Patches[2].Diff)
	}
}

func TestUpdater_Update_NoPatchesWhenSummaryEmpty(t *testing.T) {
	mock := &mockGitOps{head: "headsha", listing: ""}
	u := newTestUpdater(t, mock)

	entry, err := u.Update(UpdateOptions{BaseRef: "v1.0", IncludePatch: true})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(entry.Patches) != 0 || len(mock.fileDiffPaths) != 0 {
		t.Errorf("no-change updates should not collect patches: %+v", entry.Patches)
	}
}

func TestUpdater_InitThenUpdateRoundTrip(t *testing.T) {
	mock := &mockGitOps{head: "aaa111", listing: ""}
	u := newTestUpdater(t, mock)

	initEntry, err := u.Init()
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := u.Append(initEntry); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	baseline, err := u.Baseline()
	if err != nil {
		t.Fatalf("Baseline() error: %v", err)
	}
	if baseline != "aaa111" {
		t.Fatalf("Baseline() = %q, want aaa111", baseline)
	}

	updateEntry, err := u.Update(UpdateOptions{})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updateEntry.BaseRef != initEntry.HeadRef {
		t.Errorf("update base = %q, want the initialized head %q", updateEntry.BaseRef, initEntry.HeadRef)
	}
	if !updateEntry.Summary.Empty() {
		t.Errorf("summary should be empty with no repository changes: %+v", updateEntry.Summary)
	}
	if !strings.Contains(updateEntry.Render(), "- No changes detected in scope.") {
		t.Errorf("rendered entry should use the no-changes variant:\n%s", updateEntry.Render())
	}

	if err := u.Append(updateEntry); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	refs, err := u.Entries()
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("Entries() returned %d refs, want 2", len(refs))
	}
	if refs[0].HeadRef != "aaa111" || refs[1].BaseRef != "aaa111" {
		t.Errorf("entry refs = %+v", refs)
	}

	data, err := os.ReadFile(u.ReportPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Spec Diff Report\n") {
		t.Errorf("report should start with the standard header:\n%s", data)
	}
}
