package git

import (
	"context"
	"strconv"
	"strings"
)

// Change is a single entry from a git name-status listing.
// For renames, Path holds the new path and From the old one.
// For every other status, From is empty.
type Change struct {
	Status string // raw status code: "A", "M", "D", "T", "R100", "C75", ...
	Path   string
	From   string
}

// IsRename reports whether the change is a rename (status R with any score).
func (c Change) IsRename() bool {
	return strings.HasPrefix(c.Status, "R") && c.From != ""
}

// NameStatus lists changed paths between base and head, restricted to the
// scope pathspec. An empty head compares base against the working tree,
// which includes uncommitted changes. The command runs at root so scope
// resolves as a repository-relative path.
func NameStatus(root, base, head, scope string) ([]Change, error) {
	out, err := RunDir(context.Background(), root, "diff", "--name-status", diffRange(base, head), "--", scope)
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(out), nil
}

// FileDiff returns the patch text for a single path between base and head.
// An empty head diffs base against the working tree. Returns an empty
// string when the file has no changes in the range.
func FileDiff(root, base, head, path string) (string, error) {
	return RunDir(context.Background(), root, "diff", diffRange(base, head), "--", path)
}

// diffRange builds the revision argument for git diff.
func diffRange(base, head string) string {
	if head == "" {
		return base
	}
	return base + ".." + head
}

// ParseNameStatus parses `git diff --name-status` output.
// Each line is status, a tab, then one path, or two tab-separated paths
// for renames and copies. Lines with fewer than two fields are skipped.
// Exported so higher layers can test classification against canned
// listings without a repository.
func ParseNameStatus(out string) []Change {
	var changes []Change
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status := strings.TrimSpace(parts[0])
		if strings.HasPrefix(status, "R") && len(parts) >= 3 {
			changes = append(changes, Change{
				Status: status,
				Path:   unquotePath(parts[2]),
				From:   unquotePath(parts[1]),
			})
			continue
		}
		changes = append(changes, Change{
			Status: status,
			Path:   unquotePath(parts[1]),
		})
	}
	return changes
}

// unquotePath undoes git's C-style quoting of paths with special
// characters. Unquoted paths pass through unchanged.
func unquotePath(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}
