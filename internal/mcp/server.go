// Package mcp provides a Model Context Protocol server for foldermap.
// It exposes the read-only locate/extract/render pipeline as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all foldermap tools registered.
func NewServer(version string, source *Source) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "foldermap",
		Version: version,
	}, nil)
	registerTools(server, source)
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

// registerTools adds all foldermap tools to the server.
func registerTools(server *mcp.Server, source *Source) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "locate",
		Description: "Find the Mendeley Desktop database that foldermap reads. Returns the database path and the directory searched.",
		Annotations: readOnlyAnnotations(),
	}, handleLocate(source))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "folders",
		Description: "List library folders in report order with their document counts, plus the number of documents in no folder.",
		Annotations: readOnlyAnnotations(),
	}, handleFolders(source))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Render the folder report: one block per folder listing document titles and years, then an Unsorted block.",
		Annotations: readOnlyAnnotations(),
	}, handleReport(source))
}
