package config

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/specdiff/internal/output"
)

// FileName is the per-repository config file, looked up at the
// repository root.
const FileName = ".specdiff.yaml"

// Config holds the resolvable settings. Report and Scope are paths
// relative to the repository root unless absolute; Excludes are
// repository-relative paths dropped from every diff.
type Config struct {
	Report   string   `yaml:"report"`
	Scope    string   `yaml:"scope"`
	Excludes []string `yaml:"excludes"`
}

// Default returns the built-in settings: diffs scoped to docs/specs,
// the report alongside the specs, and frequently-churning process and
// state files excluded so the report focuses on spec content.
func Default() Config {
	return Config{
		Report: "docs/specs/spec-diff.md",
		Scope:  "docs/specs",
		Excludes: []string{
			"docs/specs/intake-state.md",
			"docs/specs/progress.md",
			"docs/specs/progress-archive.md",
			"docs/specs/sprint-current.md",
			"docs/specs/sprint-plan.md",
			"docs/specs/backlog.md",
		},
	}
}

// LoadFile reads .specdiff.yaml from the repository root. A missing
// file yields a zero Config; a malformed one is a usage error.
func LoadFile(root string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, output.NewRuntimeErrorWithCause("reading "+FileName+": "+err.Error(), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, output.NewUsageError("parsing " + FileName + ": " + err.Error())
	}
	return cfg, nil
}

// FromEnv reads the SPECDIFF_REPORT and SPECDIFF_SCOPE overrides.
func FromEnv() Config {
	return Config{
		Report: os.Getenv("SPECDIFF_REPORT"),
		Scope:  os.Getenv("SPECDIFF_SCOPE"),
	}
}

// Merge overlays over onto c, keeping c's values where over is unset.
func (c Config) Merge(over Config) Config {
	if over.Report != "" {
		c.Report = over.Report
	}
	if over.Scope != "" {
		c.Scope = over.Scope
	}
	if len(over.Excludes) > 0 {
		c.Excludes = over.Excludes
	}
	return c
}

// Resolve builds the effective configuration for a repository:
// defaults, then .specdiff.yaml at the repository root, then
// environment variables. Flag overrides are applied by the caller.
func Resolve(root string) (Config, error) {
	cfg := Default()
	fileCfg, err := LoadFile(root)
	if err != nil {
		return Config{}, err
	}
	return cfg.Merge(fileCfg).Merge(FromEnv()), nil
}

// ReportPath resolves the report location: absolute paths stand alone,
// relative paths anchor at the repository root.
func ReportPath(root, report string) string {
	if filepath.IsAbs(report) {
		return filepath.Clean(report)
	}
	return filepath.Join(root, report)
}

// ScopeRel normalizes scope to a repository-relative slash path. An
// absolute scope must sit inside the repository, and a relative scope
// must not escape it; either violation is a usage error.
func ScopeRel(root, scope string) (string, error) {
	s := scope
	if filepath.IsAbs(s) {
		rel, err := filepath.Rel(root, s)
		if err != nil || escapesRoot(rel) {
			return "", output.NewUsageError("scope must be inside the repository: " + scope)
		}
		s = rel
	}
	s = path.Clean(filepath.ToSlash(s))
	if escapesRoot(s) {
		return "", output.NewUsageError("scope must be inside the repository: " + scope)
	}
	return s, nil
}

// EffectiveExcludes returns the configured exclusion set plus the
// report file itself when it sits inside the repository, so a report
// kept in the scope never diffs its own updates.
func EffectiveExcludes(cfg Config, root, reportPath string) []string {
	excludes := append([]string(nil), cfg.Excludes...)
	rel, err := filepath.Rel(root, reportPath)
	if err != nil || escapesRoot(rel) {
		return excludes
	}
	rel = filepath.ToSlash(rel)
	for _, e := range excludes {
		if e == rel {
			return excludes
		}
	}
	return append(excludes, rel)
}

// escapesRoot reports whether a relative path points above its base.
func escapesRoot(rel string) bool {
	rel = filepath.ToSlash(rel)
	return rel == ".." || strings.HasPrefix(rel, "../")
}
