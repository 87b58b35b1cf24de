// Package output provides terminal output formatting and exit-code
// handling for the specdiff CLI.
//
// The package centers on [Printer], which renders results in one of two
// modes: styled human-readable text (via lipgloss) or machine-readable
// JSON. Commands construct a Printer from their cobra command and write
// all user-facing output through it:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, useColor(cmd))
//	printer.Success(map[string]any{"message": "baseline recorded"})
//	printer.Table(headers, rows)
//
// # Output Modes
//
// Human mode writes styled text to stdout. JSON mode writes a single
// JSON document per command so agents and scripts can parse results
// without scraping. Errors in JSON mode are emitted as {"error": ...}
// objects on stdout; human-mode errors go to stderr.
//
// # Exit Codes
//
// Errors carry exit codes via [ExitError]:
//
//	0  success
//	1  runtime failure (git subprocess, report I/O)
//	2  usage error (bad invocation, no repository, scope outside repository)
//
// Use [NewUsageError] and [NewRuntimeError] to construct errors at the
// point of failure, and [GetExitCode] at the top level to turn the
// returned error into a process exit status.
package output
