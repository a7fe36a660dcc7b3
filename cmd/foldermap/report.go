package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/foldermap/internal/config"
	"github.com/gorewood/foldermap/internal/library"
	"github.com/gorewood/foldermap/internal/normalize"
	"github.com/gorewood/foldermap/internal/output"
	"github.com/gorewood/foldermap/internal/report"
)

// Report formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

// settings is the validated configuration for one run.
type settings struct {
	cfg     config.Config
	norm    normalize.Func
	options report.Options
}

// loadSettings reads the config file, environment and flags and validates them.
func loadSettings(cmd *cobra.Command, e *env) (*settings, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(e.viper, path)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	norm, err := normalize.ByName(cfg.Normalize)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	order, err := report.ParseOrder(cfg.Order)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	switch cfg.Format {
	case formatText, formatJSON:
	default:
		return nil, output.NewUserError(fmt.Sprintf("unknown format %q (want %s or %s)", cfg.Format, formatText, formatJSON))
	}

	return &settings{
		cfg:     cfg,
		norm:    norm,
		options: report.Options{Order: order, IncludeUnsorted: cfg.Unsorted},
	}, nil
}

// database picks the explicit database for a run: a positional argument
// wins over the configured path. Empty means search.
func (s *settings) database(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return s.cfg.Database
}

// reportArgs accepts <output_file> [database]. Any other count prints the
// usage line to stdout before failing; in JSON mode stdout only carries the
// error object.
func reportArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 || len(args) == 2 {
		return nil
	}
	if isJSONMode(cmd) {
		return output.NewUserError(fmt.Sprintf("expected <output_file> [database], got %d arguments", len(args)))
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s\n", cmd.UseLine()); err != nil {
		return output.NewSystemErrorWithCause("writing usage", err)
	}
	return output.NewUserError(fmt.Sprintf("expected <output_file> [database], got %d arguments", len(args)))
}

// runReport locates, extracts, renders and writes the folder report.
func runReport(cmd *cobra.Command, e *env, args []string) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd, e)
	if err != nil {
		return err
	}
	outPath := args[0]

	explicit := s.database(args[1:])
	dbPath, err := e.locator.Locate(explicit)
	if err != nil {
		return classify(err)
	}
	if explicit == "" || isVerbose(cmd) {
		printer.Stderr("Using database: %s\n", dbPath)
	}
	if sameFile(outPath, dbPath) {
		return output.NewUserError(fmt.Sprintf("output file %s is the database being read", outPath))
	}

	lib, err := library.Load(cmd.Context(), dbPath, s.norm)
	if err != nil {
		return classify(err)
	}
	for _, id := range lib.UnknownFolders() {
		printer.Warn("ignoring %d assignments to folder %d, which is not in Folders", len(lib.Members[id]), id)
	}
	if isVerbose(cmd) {
		stats := lib.Stats()
		printer.Stderr("Read %d folders, %d documents, %d assignments\n",
			stats.Folders, stats.Documents, stats.Assignments)
	}

	rep, err := report.Build(lib, s.options)
	if err != nil {
		return classify(err)
	}

	data, err := encodeReport(rep, s.cfg)
	if err != nil {
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	if err := report.WriteTo(outPath, data, cmd.OutOrStdout()); err != nil {
		return output.NewSystemErrorWithCause(fmt.Sprintf("writing report: %v", err), err)
	}

	// stdout carries the report itself
	if outPath == report.Stdout {
		return nil
	}
	return outputReportSummary(printer, outPath, dbPath, rep)
}

// sameFile reports whether outPath already names the database file.
// The report replaces its target by rename, which would destroy the library.
func sameFile(outPath, dbPath string) bool {
	if outPath == report.Stdout {
		return false
	}
	out, err := os.Stat(outPath)
	if err != nil {
		return false
	}
	db, err := os.Stat(dbPath)
	if err != nil {
		return false
	}
	return os.SameFile(out, db)
}

// encodeReport renders rep in the configured format.
func encodeReport(rep *report.Report, cfg config.Config) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if cfg.Format == formatJSON {
		err = rep.WriteJSON(&buf)
	} else {
		err = rep.WriteText(&buf, cfg.YearPlaceholder)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// outputReportSummary reports where the report went.
func outputReportSummary(printer *output.Printer, outPath, dbPath string, rep *report.Report) error {
	folders := 0
	for _, section := range rep.Sections {
		if !section.Unsorted {
			folders++
		}
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"output":    outPath,
			"database":  dbPath,
			"folders":   folders,
			"documents": rep.DocumentCount(),
		})
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Wrote %d folders (%d document lines) to %s", folders, rep.DocumentCount(), outPath),
	})
}
