package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/foldermap/internal/library"
)

// --- Locate tool ---

// LocateInput is the input for the locate tool.
type LocateInput struct {
	Database string `json:"database,omitempty" jsonschema:"explicit database path to check instead of searching"`
}

// LocateOutput is the output for the locate tool.
type LocateOutput struct {
	Database  string `json:"database"             jsonschema:"database path that would be read"`
	SearchDir string `json:"search_dir,omitempty" jsonschema:"platform directory searched when no path is given"`
}

func handleLocate(source *Source) mcp.ToolHandlerFor[LocateInput, LocateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LocateInput) (*mcp.CallToolResult, LocateOutput, error) {
		path, err := source.resolve(input.Database)
		if err != nil {
			return nil, LocateOutput{}, fmt.Errorf("locating database: %w", err)
		}

		out := LocateOutput{Database: path}
		if input.Database == "" && source.database == "" {
			out.SearchDir, _ = source.locator.SearchDir()
		}
		return nil, out, nil
	}
}

// --- Folders tool ---

// FoldersInput is the input for the folders tool.
type FoldersInput struct {
	Database string `json:"database,omitempty" jsonschema:"database path (default: configured or discovered)"`
}

// FolderSummary is one folder in the folders output.
type FolderSummary struct {
	Name      string `json:"name"      jsonschema:"normalized folder name"`
	Documents int    `json:"documents" jsonschema:"number of documents in the folder"`
}

// FoldersOutput is the output for the folders tool.
type FoldersOutput struct {
	Database   string          `json:"database"   jsonschema:"database path that was read"`
	Folders    []FolderSummary `json:"folders"    jsonschema:"folders in report order"`
	Unassigned int             `json:"unassigned" jsonschema:"number of documents in no folder"`
	Stats      library.Stats   `json:"stats"      jsonschema:"library counts"`
}

func handleFolders(source *Source) mcp.ToolHandlerFor[FoldersInput, FoldersOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FoldersInput) (*mcp.CallToolResult, FoldersOutput, error) {
		path, lib, rep, err := source.buildReport(ctx, input.Database)
		if err != nil {
			return nil, FoldersOutput{}, fmt.Errorf("building report: %w", err)
		}

		out := FoldersOutput{
			Database:   path,
			Folders:    make([]FolderSummary, 0, len(rep.Sections)),
			Unassigned: len(lib.Unassigned),
			Stats:      lib.Stats(),
		}
		for _, section := range rep.Sections {
			if section.Unsorted {
				continue
			}
			out.Folders = append(out.Folders, FolderSummary{Name: section.Name, Documents: len(section.Documents)})
		}
		return nil, out, nil
	}
}

// --- Report tool ---

// ReportInput is the input for the report tool.
type ReportInput struct {
	Database string `json:"database,omitempty" jsonschema:"database path (default: configured or discovered)"`
}

// ReportOutput is the output for the report tool.
type ReportOutput struct {
	Database string `json:"database" jsonschema:"database path that was read"`
	Text     string `json:"text"     jsonschema:"plain-text folder report"`
}

func handleReport(source *Source) mcp.ToolHandlerFor[ReportInput, ReportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, ReportOutput, error) {
		path, _, rep, err := source.buildReport(ctx, input.Database)
		if err != nil {
			return nil, ReportOutput{}, fmt.Errorf("building report: %w", err)
		}
		return nil, ReportOutput{Database: path, Text: rep.FormatText(source.yearPlaceholder)}, nil
	}
}
