package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/foldermap/internal/output"
)

// newConfigCmd creates the config command.
func newConfigCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
FOLDERMAP_* environment variables and flags. The output is valid
config.yaml content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, e)
		},
	}
}

// runConfig executes the config command.
func runConfig(cmd *cobra.Command, e *env) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd, e)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(s.cfg)
	}

	text, err := s.cfg.YAML()
	if err != nil {
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	if s.cfg.Source != "" {
		printer.Stderr("# from %s\n", s.cfg.Source)
	}
	printer.Print("%s", text)
	return nil
}
