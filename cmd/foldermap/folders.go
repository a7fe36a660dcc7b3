package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/foldermap/internal/library"
	"github.com/gorewood/foldermap/internal/output"
	"github.com/gorewood/foldermap/internal/report"
)

// folderRow is one folder in folders output.
type folderRow struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
	Unsorted  bool   `json:"unsorted,omitempty"`
}

// foldersResult holds the data for folders output.
type foldersResult struct {
	Database string        `json:"database"`
	Folders  []folderRow   `json:"folders"`
	Stats    library.Stats `json:"stats"`
}

// newFoldersCmd creates the folders command.
func newFoldersCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "folders [database]",
		Short: "List folders with their document counts",
		Long: `List the folders of the library in report order with the number of
documents filed in each. The Unsorted row counts documents in no folder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolders(cmd, e, args)
		},
	}
}

// runFolders executes the folders command.
func runFolders(cmd *cobra.Command, e *env, args []string) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd, e)
	if err != nil {
		return err
	}
	path, err := e.locator.Locate(s.database(args))
	if err != nil {
		return classify(err)
	}
	lib, err := library.Load(cmd.Context(), path, s.norm)
	if err != nil {
		return classify(err)
	}
	rep, err := report.Build(lib, s.options)
	if err != nil {
		return classify(err)
	}

	result := buildFoldersResult(path, lib, rep)
	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	outputFoldersHuman(printer, result)
	return nil
}

// buildFoldersResult summarizes the report sections.
func buildFoldersResult(path string, lib *library.Library, rep *report.Report) foldersResult {
	result := foldersResult{
		Database: path,
		Folders:  make([]folderRow, 0, len(rep.Sections)),
		Stats:    lib.Stats(),
	}
	for _, section := range rep.Sections {
		result.Folders = append(result.Folders, folderRow{
			Name:      section.Name,
			Documents: len(section.Documents),
			Unsorted:  section.Unsorted,
		})
	}
	return result
}

// outputFoldersHuman prints the folder table.
func outputFoldersHuman(printer *output.Printer, result foldersResult) {
	if len(result.Folders) == 0 {
		printer.Println("No folders")
		return
	}

	rows := make([][]string, 0, len(result.Folders))
	for _, row := range result.Folders {
		rows = append(rows, []string{row.Name, strconv.Itoa(row.Documents)})
	}
	printer.Table([]string{"FOLDER", "DOCUMENTS"}, rows)
}
