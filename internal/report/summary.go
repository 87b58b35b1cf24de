package report

import (
	"path"
	"sort"
	"strings"

	"github.com/gorewood/specdiff/internal/git"
)

// Rename records one renamed path pair.
type Rename struct {
	From string
	To   string
}

// String renders the rename the way report entries list it.
func (r Rename) String() string {
	return r.From + " -> " + r.To
}

// Summary groups the changed paths of one diff by kind. Paths are
// repository-relative with forward slashes. Each collection is sorted
// ascending regardless of the order git emitted the lines.
type Summary struct {
	Added    []string
	Modified []string
	Deleted  []string
	Renamed  []Rename
}

// Empty reports whether no changes survived exclusion filtering.
func (s Summary) Empty() bool {
	return len(s.Added) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Renamed) == 0
}

// BuildSummary classifies name-status changes and filters the exclusion
// set. Status A lands in Added, D in Deleted, renames in Renamed, and
// every other status (M, T, copies) in Modified. A rename is dropped
// when either side matches an excluded path.
func BuildSummary(changes []git.Change, excludes []string) Summary {
	excluded := make(map[string]bool, len(excludes))
	for _, e := range excludes {
		excluded[normalizePath(e)] = true
	}

	var s Summary
	for _, c := range changes {
		if c.IsRename() {
			from := normalizePath(c.From)
			to := normalizePath(c.Path)
			if excluded[from] || excluded[to] {
				continue
			}
			s.Renamed = append(s.Renamed, Rename{From: from, To: to})
			continue
		}

		p := normalizePath(c.Path)
		if excluded[p] {
			continue
		}
		switch c.Status {
		case "A":
			s.Added = append(s.Added, p)
		case "D":
			s.Deleted = append(s.Deleted, p)
		default:
			s.Modified = append(s.Modified, p)
		}
	}

	sort.Strings(s.Added)
	sort.Strings(s.Modified)
	sort.Strings(s.Deleted)
	sort.Slice(s.Renamed, func(i, j int) bool {
		return s.Renamed[i].String() < s.Renamed[j].String()
	})
	return s
}

// normalizePath cleans a repository-relative path to forward slashes
// so exclusion matching is insensitive to separator and dot segments.
func normalizePath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
