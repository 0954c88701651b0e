package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leo/creators-guide/internal/config"
	ui "github.com/leo/creators-guide/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after applying config files, .env, environment and flags (yaml unless -o json).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(newDeps(os.Stdout).Printer, loadedCfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(p ui.Printer, cfg config.Config) error {
	if p.Format() == ui.FormatJSON {
		return p.Emit(cfg)
	}
	return ui.NewPrinter(ui.FormatYAML, p.Writer()).Emit(cfg)
}
