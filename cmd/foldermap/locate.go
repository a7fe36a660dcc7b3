package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/foldermap/internal/output"
)

// locateResult holds the data for locate output.
type locateResult struct {
	Database  string `json:"database"`
	SearchDir string `json:"search_dir,omitempty"`
}

// newLocateCmd creates the locate command.
func newLocateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "locate [database]",
		Short: "Show which Mendeley database would be read",
		Long: `Show the database foldermap would read. With no argument the platform's
Mendeley Desktop data directory is searched and must hold exactly one
*.sqlite library (monitor.sqlite is ignored).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, e, args)
		},
	}
}

// runLocate executes the locate command.
func runLocate(cmd *cobra.Command, e *env, args []string) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd, e)
	if err != nil {
		return err
	}
	explicit := s.database(args)

	path, err := e.locator.Locate(explicit)
	if err != nil {
		return classify(err)
	}

	result := locateResult{Database: path}
	if explicit == "" {
		// Locate already resolved it, so this cannot fail
		result.SearchDir, _ = e.locator.SearchDir()
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	outputLocateHuman(printer, result)
	return nil
}

// outputLocateHuman prints the located database.
func outputLocateHuman(printer *output.Printer, result locateResult) {
	printer.KeyValue("Database", result.Database)
	if result.SearchDir != "" {
		printer.KeyValue("Searched", result.SearchDir)
	}
}
