package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// timestampLayout is the fixed UTC format used in entry headers.
const timestampLayout = "2006-01-02 15:04:05Z"

// Patch holds the literal diff text for one path, included when patch
// embedding is requested. An empty Diff renders as "(no changes)".
type Patch struct {
	Path string
	Diff string
}

// Entry is one appended report section describing a single run.
type Entry struct {
	Timestamp        time.Time
	BaseRef          string
	HeadRef          string
	Scope            string
	IncludesWorktree bool
	Excludes         []string
	Baseline         bool
	Summary          Summary
	Patches          []Patch
}

// Render produces the markdown block for the entry. The block always
// ends with exactly one newline; interior trailing whitespace is
// normalized away.
func (e *Entry) Render() string {
	var builder strings.Builder

	writeEntryMeta(&builder, e)

	switch {
	case e.Baseline:
		builder.WriteString("\n### Summary\n")
		builder.WriteString("- Baseline initialized (no diff).\n")
	case e.Summary.Empty():
		builder.WriteString("\n### Summary\n")
		builder.WriteString("- No changes detected in scope.\n")
	default:
		writeExcludes(&builder, e.Excludes)
		writeSummaryCounts(&builder, e.Summary)
		writeCategory(&builder, "Added", e.Summary.Added)
		writeCategory(&builder, "Modified", e.Summary.Modified)
		writeCategory(&builder, "Deleted", e.Summary.Deleted)
		writeRenames(&builder, e.Summary.Renamed)
		writePatches(&builder, e.Patches)
	}

	return strings.TrimRight(builder.String(), " \t\n") + "\n"
}

// writeEntryMeta writes the timestamp header and reference lines.
// The "Head ref:" line is the only machine-parsed structure in the
// report; everything else is for humans.
func writeEntryMeta(builder *strings.Builder, e *Entry) {
	fmt.Fprintf(builder, "## %s\n\n", e.Timestamp.UTC().Format(timestampLayout))
	fmt.Fprintf(builder, "Base ref: %s\n", e.BaseRef)
	fmt.Fprintf(builder, "Head ref: %s\n", e.HeadRef)
	fmt.Fprintf(builder, "Scope: %s\n", e.Scope)
	fmt.Fprintf(builder, "Includes worktree: %s\n", yesNo(e.IncludesWorktree))
}

// writeExcludes writes the exclusion list, sorted, when non-empty.
func writeExcludes(builder *strings.Builder, excludes []string) {
	if len(excludes) == 0 {
		return
	}
	sorted := append([]string(nil), excludes...)
	sort.Strings(sorted)

	builder.WriteString("Excludes:\n")
	for _, p := range sorted {
		fmt.Fprintf(builder, "- `%s`\n", p)
	}
}

// writeSummaryCounts writes the per-category counts.
func writeSummaryCounts(builder *strings.Builder, s Summary) {
	builder.WriteString("\n### Summary\n")
	fmt.Fprintf(builder, "- Added: %d\n", len(s.Added))
	fmt.Fprintf(builder, "- Modified: %d\n", len(s.Modified))
	fmt.Fprintf(builder, "- Deleted: %d\n", len(s.Deleted))
	fmt.Fprintf(builder, "- Renamed: %d\n", len(s.Renamed))
}

// writeCategory writes one labelled path list, skipped when empty.
func writeCategory(builder *strings.Builder, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(builder, "\n### %s\n", label)
	for _, p := range paths {
		fmt.Fprintf(builder, "- `%s`\n", p)
	}
}

// writeRenames writes the rename list, skipped when empty.
func writeRenames(builder *strings.Builder, renames []Rename) {
	if len(renames) == 0 {
		return
	}
	builder.WriteString("\n### Renamed\n")
	for _, r := range renames {
		fmt.Fprintf(builder, "- `%s`\n", r)
	}
}

// writePatches writes per-file diffs inside fenced code blocks.
func writePatches(builder *strings.Builder, patches []Patch) {
	if len(patches) == 0 {
		return
	}
	builder.WriteString("\n### Patch\n")
	for _, p := range patches {
		fmt.Fprintf(builder, "\n#### `%s`\n\n", p.Path)
		builder.WriteString("```diff\n")
		if p.Diff == "" {
			builder.WriteString("(no changes)")
		} else {
			builder.WriteString(p.Diff)
		}
		builder.WriteString("\n```\n")
	}
}

// yesNo formats a boolean the way entry metadata spells it.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
