// Package mcp provides a Model Context Protocol server for specdiff.
// It exposes report operations as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/specdiff/internal/report"
)

// NewServer creates an MCP server with all specdiff tools registered.
func NewServer(version string, up *report.Updater) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "specdiff",
		Version: version,
	}, nil)
	registerTools(server, up)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all specdiff tools to the server.
func registerTools(server *mcp.Server, up *report.Updater) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show report state: report path, scope, recorded baseline, entry count, and current HEAD.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(up))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "history",
		Description: "List recorded report entries (timestamp, base ref, head ref), oldest first. Supports last=N to limit.",
		Annotations: readOnlyAnnotations(),
	}, handleHistory(up))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview",
		Description: "Render a diff entry against the recorded baseline (or an explicit base) without writing the report.",
		Annotations: readOnlyAnnotations(),
	}, handlePreview(up))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update",
		Description: "Diff the scope against the recorded baseline and append the entry to the report.",
		Annotations: writeAnnotations(),
	}, handleUpdate(up))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "init_baseline",
		Description: "Record the current HEAD as the report baseline. Creates the report file when missing.",
		Annotations: writeAnnotations(),
	}, handleInitBaseline(up))
}
