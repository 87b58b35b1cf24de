package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/gorewood/specdiff/internal/output"
)

// reportHeader is written once when the report file is first created.
const reportHeader = "# Spec Diff Report\n\n> This file is generated/updated by `specdiff`.\n\n"

// EnsureReport creates the report file with its standard header when it
// does not exist yet, creating parent directories as needed.
func EnsureReport(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return output.NewRuntimeErrorWithCause("checking report file: "+err.Error(), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewRuntimeErrorWithCause("creating report directory: "+err.Error(), err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(reportHeader)); err != nil {
		return output.NewRuntimeErrorWithCause("creating report file: "+err.Error(), err)
	}
	// atomic.WriteFile leaves temp-file permissions on newly created files
	if err := os.Chmod(path, 0o644); err != nil {
		return output.NewRuntimeErrorWithCause("setting report permissions: "+err.Error(), err)
	}
	return nil
}

// LoadReport returns the report text, or an empty string when the file
// does not exist.
func LoadReport(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", output.NewRuntimeErrorWithCause("reading report file: "+err.Error(), err)
	}
	return string(data), nil
}

// AppendEntry appends a rendered entry to the report, separated from the
// existing content by exactly one blank line. The whole file is rewritten
// atomically; the report is created with its header first when absent.
func AppendEntry(path, entry string) error {
	if err := EnsureReport(path); err != nil {
		return err
	}
	text, err := LoadReport(path)
	if err != nil {
		return err
	}

	content := strings.TrimRight(text, " \t\r\n") + "\n\n" + entry
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return output.NewRuntimeErrorWithCause("writing report file: "+err.Error(), err)
	}
	return nil
}

// LastHeadRef returns the value of the last non-empty "Head ref:" line
// in the report text, scanning top to bottom. Returns an empty string
// when no such line exists. Textual order is chronological order since
// the report is append-only.
func LastHeadRef(text string) string {
	var last string
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "Head ref:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, "Head ref:"))
		if value != "" {
			last = value
		}
	}
	return last
}

// EntryRef is the displayable metadata of one recorded entry.
type EntryRef struct {
	Timestamp string `json:"timestamp"`
	BaseRef   string `json:"base_ref"`
	HeadRef   string `json:"head_ref"`
}

// ScanEntries extracts entry metadata from the report text in file
// order. Parsing is line-based and best-effort: an entry starts at a
// "## " heading and picks up the reference lines that follow it.
func ScanEntries(text string) []EntryRef {
	var entries []EntryRef
	var current *EntryRef
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			entries = append(entries, EntryRef{
				Timestamp: strings.TrimSpace(strings.TrimPrefix(line, "## ")),
			})
			current = &entries[len(entries)-1]
		case current != nil && strings.HasPrefix(line, "Base ref:"):
			current.BaseRef = strings.TrimSpace(strings.TrimPrefix(line, "Base ref:"))
		case current != nil && strings.HasPrefix(line, "Head ref:"):
			current.HeadRef = strings.TrimSpace(strings.TrimPrefix(line, "Head ref:"))
		}
	}
	return entries
}
