package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/specdiff/internal/report"
)

// --- Shared types ---

// DiffCounts summarizes one entry's change totals.
type DiffCounts struct {
	Added    int `json:"added"    jsonschema:"number of added files"`
	Modified int `json:"modified" jsonschema:"number of modified files"`
	Deleted  int `json:"deleted"  jsonschema:"number of deleted files"`
	Renamed  int `json:"renamed"  jsonschema:"number of renamed files"`
}

// countsOf extracts the change totals from a summary.
func countsOf(s report.Summary) DiffCounts {
	return DiffCounts{
		Added:    len(s.Added),
		Modified: len(s.Modified),
		Deleted:  len(s.Deleted),
		Renamed:  len(s.Renamed),
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Report       string `json:"report"             jsonschema:"absolute path of the report file"`
	ReportExists bool   `json:"report_exists"      jsonschema:"whether the report file exists"`
	Scope        string `json:"scope"              jsonschema:"repository-relative scope being diffed"`
	Baseline     string `json:"baseline,omitempty" jsonschema:"last recorded head reference"`
	EntryCount   int    `json:"entry_count"        jsonschema:"number of recorded entries"`
	Head         string `json:"head"               jsonschema:"current HEAD commit SHA"`
}

func handleStatus(up *report.Updater) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		head, err := up.Head()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting HEAD: %w", err)
		}
		baseline, err := up.Baseline()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("reading baseline: %w", err)
		}
		entries, err := up.Entries()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("scanning entries: %w", err)
		}
		_, statErr := os.Stat(up.ReportPath())

		out := StatusOutput{
			Report:       up.ReportPath(),
			ReportExists: statErr == nil,
			Scope:        up.Scope(),
			Baseline:     baseline,
			EntryCount:   len(entries),
			Head:         head,
		}
		return nil, out, nil
	}
}

// --- History tool ---

// HistoryInput is the input for the history tool.
type HistoryInput struct {
	Last int `json:"last,omitempty" jsonschema:"return only the last N entries"`
}

// HistoryOutput is the output for the history tool.
type HistoryOutput struct {
	Count   int               `json:"count"             jsonschema:"number of entries returned"`
	Entries []report.EntryRef `json:"entries,omitempty" jsonschema:"entry metadata, oldest first"`
}

func handleHistory(up *report.Updater) mcp.ToolHandlerFor[HistoryInput, HistoryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
		entries, err := up.Entries()
		if err != nil {
			return nil, HistoryOutput{}, fmt.Errorf("scanning entries: %w", err)
		}
		if input.Last > 0 && len(entries) > input.Last {
			entries = entries[len(entries)-input.Last:]
		}
		return nil, HistoryOutput{Count: len(entries), Entries: entries}, nil
	}
}

// --- Preview tool ---

// PreviewInput is the input for the preview tool.
type PreviewInput struct {
	Base       string `json:"base,omitempty"        jsonschema:"explicit base reference (default: last recorded head)"`
	NoWorktree bool   `json:"no_worktree,omitempty" jsonschema:"compare committed history only"`
	Patch      bool   `json:"patch,omitempty"       jsonschema:"embed per-file diffs"`
}

// PreviewOutput is the output for the preview tool.
type PreviewOutput struct {
	Entry   string     `json:"entry"    jsonschema:"rendered markdown entry"`
	BaseRef string     `json:"base_ref" jsonschema:"resolved base reference"`
	HeadRef string     `json:"head_ref" jsonschema:"current head reference"`
	Counts  DiffCounts `json:"counts"   jsonschema:"change totals by category"`
}

func handlePreview(up *report.Updater) mcp.ToolHandlerFor[PreviewInput, PreviewOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PreviewInput) (*mcp.CallToolResult, PreviewOutput, error) {
		entry, err := up.Update(report.UpdateOptions{
			BaseRef:      input.Base,
			NoWorktree:   input.NoWorktree,
			IncludePatch: input.Patch,
		})
		if err != nil {
			return nil, PreviewOutput{}, err
		}

		out := PreviewOutput{
			Entry:   entry.Render(),
			BaseRef: entry.BaseRef,
			HeadRef: entry.HeadRef,
			Counts:  countsOf(entry.Summary),
		}
		return nil, out, nil
	}
}

// --- Update tool ---

// UpdateInput is the input for the update tool.
type UpdateInput struct {
	Base       string `json:"base,omitempty"        jsonschema:"explicit base reference (default: last recorded head)"`
	NoWorktree bool   `json:"no_worktree,omitempty" jsonschema:"compare committed history only"`
	Patch      bool   `json:"patch,omitempty"       jsonschema:"embed per-file diffs"`
}

// UpdateOutput is the output for the update tool.
type UpdateOutput struct {
	Report  string     `json:"report"   jsonschema:"absolute path of the report file"`
	BaseRef string     `json:"base_ref" jsonschema:"resolved base reference"`
	HeadRef string     `json:"head_ref" jsonschema:"recorded head reference"`
	Counts  DiffCounts `json:"counts"   jsonschema:"change totals by category"`
}

func handleUpdate(up *report.Updater) mcp.ToolHandlerFor[UpdateInput, UpdateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input UpdateInput) (*mcp.CallToolResult, UpdateOutput, error) {
		entry, err := up.Update(report.UpdateOptions{
			BaseRef:      input.Base,
			NoWorktree:   input.NoWorktree,
			IncludePatch: input.Patch,
		})
		if err != nil {
			return nil, UpdateOutput{}, err
		}
		if err := up.Append(entry); err != nil {
			return nil, UpdateOutput{}, fmt.Errorf("appending entry: %w", err)
		}

		out := UpdateOutput{
			Report:  up.ReportPath(),
			BaseRef: entry.BaseRef,
			HeadRef: entry.HeadRef,
			Counts:  countsOf(entry.Summary),
		}
		return nil, out, nil
	}
}

// --- Init baseline tool ---

// InitInput is the input for the init_baseline tool (no parameters needed).
type InitInput struct{}

// InitOutput is the output for the init_baseline tool.
type InitOutput struct {
	Report  string `json:"report"   jsonschema:"absolute path of the report file"`
	HeadRef string `json:"head_ref" jsonschema:"recorded head reference"`
}

func handleInitBaseline(up *report.Updater) mcp.ToolHandlerFor[InitInput, InitOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ InitInput) (*mcp.CallToolResult, InitOutput, error) {
		entry, err := up.Init()
		if err != nil {
			return nil, InitOutput{}, err
		}
		if err := up.Append(entry); err != nil {
			return nil, InitOutput{}, fmt.Errorf("appending entry: %w", err)
		}
		return nil, InitOutput{Report: up.ReportPath(), HeadRef: entry.HeadRef}, nil
	}
}
