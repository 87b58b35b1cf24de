package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/specdiff/internal/output"
)

func TestHistoryCommand_Empty(t *testing.T) {
	up := newCmdUpdater(t, &mockGitOps{head: "abc123"})

	cmd := newHistoryCmdInternal(up)
	cmd.SetArgs([]string{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out.String(), "No entries recorded") {
		t.Errorf("output = %q, want empty-report hint", out.String())
	}
}

func TestHistoryCommand_Table(t *testing.T) {
	mock := &mockGitOps{head: "aaa1112222333344445555666677778888999900"}
	up := newCmdUpdater(t, mock)
	appendBaseline(t, up)
	mock.head = "bbb2223333444455556666777788889999000011"
	appendBaseline(t, up)

	cmd := newHistoryCmdInternal(up)
	cmd.SetArgs([]string{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"TIMESTAMP", "BASE", "HEAD", "aaa111222233", "bbb222333344"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q\nOutput: %s", want, got)
		}
	}
	// Refs are truncated for display
	if strings.Contains(got, "aaa1112222333344445555666677778888999900") {
		t.Errorf("table output should truncate refs\nOutput: %s", got)
	}
}

func TestHistoryCommand_Last(t *testing.T) {
	mock := &mockGitOps{head: "aaa111"}
	up := newCmdUpdater(t, mock)
	appendBaseline(t, up)
	mock.head = "bbb222"
	appendBaseline(t, up)
	mock.head = "ccc333"
	appendBaseline(t, up)

	cmd := newHistoryCmdInternal(up)
	cmd.SetArgs([]string{"--last", "1"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "ccc333") {
		t.Errorf("output missing newest entry\nOutput: %s", got)
	}
	if strings.Contains(got, "aaa111") || strings.Contains(got, "bbb222") {
		t.Errorf("output should only show the last entry\nOutput: %s", got)
	}
}

func TestHistoryCommand_NegativeLast(t *testing.T) {
	up := newCmdUpdater(t, &mockGitOps{head: "abc123"})

	cmd := newHistoryCmdInternal(up)
	cmd.SetArgs([]string{"--last", "-3"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for negative --last")
	}
	if code := output.GetExitCode(err); code != output.ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUsageError)
	}
}

func TestHistoryCommand_JSON(t *testing.T) {
	mock := &mockGitOps{head: "aaa111"}
	up := newCmdUpdater(t, mock)
	appendBaseline(t, up)
	mock.head = "bbb222"
	appendBaseline(t, up)

	cmd := newHistoryCmdInternal(up)
	cmd.PersistentFlags().Bool("json", false, "")
	cmd.SetArgs([]string{"--json"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("output is not a JSON array: %v\nOutput: %s", err, out.String())
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0]["head_ref"] != "aaa111" {
		t.Errorf("first head_ref = %v, want %q", entries[0]["head_ref"], "aaa111")
	}
	if entries[1]["base_ref"] != "bbb222" || entries[1]["head_ref"] != "bbb222" {
		t.Errorf("second entry refs = %v/%v, want both %q",
			entries[1]["base_ref"], entries[1]["head_ref"], "bbb222")
	}
	if _, ok := entries[0]["timestamp"]; !ok {
		t.Error("entries missing timestamp field")
	}
}
