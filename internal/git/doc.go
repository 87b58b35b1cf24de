// Package git provides Git operations via exec for the specdiff CLI.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating failures to typed errors. No
// git library is linked; the subprocess output is the contract.
//
// # General Operations
//
// The package provides common git operations through simple function calls:
//
//	git.IsRepo()        // Check if current directory is inside a repository
//	git.RepoRoot()      // Get the root directory of the repository
//	git.CurrentBranch() // Get the current branch name
//	git.HEAD()          // Get the current HEAD commit SHA
//
// # Diff Operations
//
// Diff listings and per-file patches anchor their pathspecs at the
// repository root so scope paths resolve the same from any directory:
//
//	changes, err := git.NameStatus(root, "v1.0", "", "docs/specs")
//	patch, err := git.FileDiff(root, "v1.0", "HEAD", "docs/specs/api.md")
//
// A NameStatus with an empty head compares the base against the working
// tree, including uncommitted changes.
//
// # Running Git Commands
//
// For custom git commands, use Run, RunContext, or RunDir:
//
//	out, err := git.Run("status", "--porcelain")
//	out, err := git.RunDir(ctx, root, "diff", "--name-status", base)
//
// # Error Handling
//
// Failures return *output.ExitError with ExitRuntimeError (1) and carry
// git's stderr in the message:
//
//	sha, err := git.HEAD()
//	if err != nil {
//	    return err // Error already wrapped with appropriate code
//	}
package git
