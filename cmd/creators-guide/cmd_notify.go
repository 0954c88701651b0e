package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/leo/creators-guide/internal/exitcodes"
	ui "github.com/leo/creators-guide/internal/ui"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Show the interactive update notification",
	Long:  "Check for updates and show a notification card. Press d to open the download, c to copy the link, l to dismiss.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotify(cmd.Context(), newDeps(os.Stdout), ui.IsInteractive())
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

// runNotify shows the bubbletea card on a terminal and falls back to the
// plain check output otherwise.
func runNotify(ctx context.Context, d *Deps, interactive bool) error {
	if !interactive || d.Printer.Structured() {
		return runCheck(ctx, d, nil, false)
	}

	m, err := ui.RunNotify(ctx, ui.NotifyOptions{
		Checker: d.Checker,
		Opener:  d.Opener,
		NoColor: !d.Printer.Colors.Enabled,
		Width:   ui.TerminalWidth(80),
	})
	if err != nil {
		return err
	}

	d.Logger.Debug().
		Stringer("status", m.Result().Status).
		Stringer("action", m.Action()).
		Msg("notification closed")

	if m.Err() != nil && m.Action() != ui.ActionDownload {
		// The card already showed the failure; keep the link visible after exit.
		d.Printer.Warn("Download link: " + m.Result().TargetURL())
		return silentErr{exitcodes.OpenErr("could not hand off download link", m.Err())}
	}
	return nil
}
