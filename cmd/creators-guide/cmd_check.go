package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leo/creators-guide/internal/exitcodes"
	ui "github.com/leo/creators-guide/internal/ui"
)

func init() {
	var strict bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer release",
		Long:  "Run one update check and print the result. With --strict the exit code is 10 when an update is available.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), newDeps(os.Stdout), os.Stderr, strict)
		},
	}
	checkCmd.Flags().BoolVar(&strict, "strict", false, "Exit with code 10 when an update is available")
	rootCmd.AddCommand(checkCmd)
}

// runCheck performs one check and prints it. progress receives the
// "checking" line in text mode so stdout stays a clean result.
func runCheck(ctx context.Context, d *Deps, progress io.Writer, strict bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := d.Printer
	if !p.Structured() && !flagQuiet && progress != nil {
		fmt.Fprint(progress, ui.RenderChecking(p.Colors))
	}

	res := d.Checker.Check(ctx)
	d.Logger.Debug().Stringer("status", res.Status).Msg("check finished")

	if p.Structured() {
		if err := p.Emit(res); err != nil {
			return err
		}
	} else {
		fmt.Fprint(p.Writer(), ui.RenderResult(p.Colors, res))
	}

	if strict && res.UpdateAvailable() {
		return silentErr{exitcodes.UpdateAvailableErrorf("update available: %s -> %s", res.CurrentVersion, res.LatestVersion)}
	}
	return nil
}
