// Package main provides the entry point for the foldermap CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gorewood/foldermap/internal/config"
	"github.com/gorewood/foldermap/internal/locate"
	"github.com/gorewood/foldermap/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// env carries what every command shares: the settings layer and the locator.
type env struct {
	viper   *viper.Viper
	locator *locate.Locator
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	flag := cmd.Root().PersistentFlags().Lookup("verbose")
	return flag != nil && flag.Value.String() == "true"
}

// newPrinter creates a printer for cmd honoring --json and --color.
// Hints and errors go to the command's stderr in human mode.
func newPrinter(cmd *cobra.Command) *output.Printer {
	mode := ""
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, isJSONMode(cmd), output.ResolveColorMode(mode, out)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(errorHandler(cmd)),
	)
	return output.GetExitCode(err)
}

// errorHandler prints the error that ended the run as one diagnostic line.
// In JSON mode the error object goes to stdout like every other result.
func errorHandler(root *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		jsonMode := isJSONMode(root)
		out := w
		if jsonMode {
			out = root.OutOrStdout()
		}
		mode := ""
		if flag := root.PersistentFlags().Lookup("color"); flag != nil {
			mode = flag.Value.String()
		}
		output.NewPrinter(out, jsonMode, output.ResolveColorMode(mode, root.ErrOrStderr())).
			WithStderr(out).
			Error(classify(err))
	}
}

// newRootCmd creates the root command for the foldermap CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(locate.New())
}

// newRootCmdInternal creates the root command with an injected locator.
func newRootCmdInternal(locator *locate.Locator) *cobra.Command {
	e := &env{viper: config.New(), locator: locator}

	cmd := &cobra.Command{
		Use:   "foldermap <output_file> [database]",
		Short: "Write a plain-text map of a Mendeley library's folders",
		Long: `foldermap reads a Mendeley Desktop SQLite database and writes a plain-text
report listing every folder, the documents filed in it, and a final
"Unsorted" section for documents that are in no folder.

When no database is given, the Mendeley Desktop data directory for this
platform is searched for exactly one *.sqlite file. Use "-" as the output
file to write the report to stdout.

The database is only ever opened read-only.`,
		Example: `  foldermap folders.txt
  foldermap folders.txt ~/backup/me@www.mendeley.com.sqlite
  foldermap --order discovery --unsorted=false - | less`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          reportArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, _ := cmd.Root().PersistentFlags().GetString("color")
			_, err := output.ParseColorMode(mode)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, e, args)
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output results and errors as JSON")
	cmd.PersistentFlags().String("config", "", "Config file (default "+config.File()+")")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print progress hints to stderr")
	addReportFlags(cmd.PersistentFlags(), e.viper)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, e)

	return cmd
}

// addReportFlags registers the report settings as persistent flags bound to v.
// A flag only overrides the config file and environment when it is set.
func addReportFlags(flags *pflag.FlagSet, v *viper.Viper) {
	d := config.Defaults()
	flags.String(config.KeyFormat, d.Format, "Report format: text, json")
	flags.String(config.KeyOrder, d.Order, "Folder order: name, discovery")
	flags.Bool(config.KeyUnsorted, d.Unsorted, "Append an Unsorted section for documents in no folder")
	flags.String(config.KeyNormalize, d.Normalize, "Text normalization: ascii, nfc, none")
	flags.String(config.KeyYearPlaceholder, d.YearPlaceholder, "Text printed for a document without a year")

	for _, key := range []string{
		config.KeyFormat, config.KeyOrder, config.KeyUnsorted,
		config.KeyNormalize, config.KeyYearPlaceholder,
	} {
		// BindPFlag only fails for a nil flag
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "library", Title: "Library Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, e *env) {
	addGroupedCommand(cmd, newLocateCmd(e), "library")
	addGroupedCommand(cmd, newFoldersCmd(e), "library")
	addGroupedCommand(cmd, newServeCmd(e), "agent")
	addGroupedCommand(cmd, newConfigCmd(e), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
