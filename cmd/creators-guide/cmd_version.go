package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	ui "github.com/leo/creators-guide/internal/ui"
	"github.com/leo/creators-guide/internal/update"
)

// versionReport is the structured form of `version`.
type versionReport struct {
	Name      string `json:"version" yaml:"version"`
	Code      int    `json:"version_code" yaml:"version_code"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(newDeps(os.Stdout))
	},
}

func runVersion(d *Deps) error {
	r := versionReport{
		Name:      d.Info.VersionName(),
		Code:      d.Info.VersionCode(),
		Commit:    Commit,
		BuildDate: BuildDate,
	}
	if d.Printer.Structured() {
		return d.Printer.Emit(r)
	}
	d.Printer.Textf("%s %s (code %d, %s) built %s\n", appName, r.Name, r.Code, r.Commit, r.BuildDate)
	return nil
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unknown shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// backgroundWait bounds how long PersistentPostRun waits for a check that
// has not finished yet.
const backgroundWait = 300 * time.Millisecond

// asyncChecker is implemented by *update.Checker.
type asyncChecker interface {
	CheckAsync(ctx context.Context) <-chan update.Result
}

var (
	backgroundCheck   <-chan update.Result
	backgroundCheckMu sync.Mutex
)

// startBackgroundCheck runs one asynchronous check while the command runs.
func startBackgroundCheck(ctx context.Context, d *Deps) {
	if !d.Cfg.Update.ChecksEnabled {
		return
	}
	c, ok := d.Checker.(asyncChecker)
	if !ok {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	backgroundCheckMu.Lock()
	backgroundCheck = c.CheckAsync(ctx)
	backgroundCheckMu.Unlock()
}

// backgroundCheckResult returns the background result if one arrives in time.
func backgroundCheckResult() (update.Result, bool) {
	backgroundCheckMu.Lock()
	ch := backgroundCheck
	backgroundCheck = nil
	backgroundCheckMu.Unlock()
	if ch == nil {
		return update.Result{}, false
	}

	select {
	case res, ok := <-ch:
		return res, ok
	case <-time.After(backgroundWait):
		return update.Result{}, false
	}
}

// showUpdateNotification prints the post-command banner when an update is available.
func showUpdateNotification(w io.Writer, res update.Result) {
	// Don't show in JSON/YAML output modes
	if flagOutput == ui.FormatJSON || flagOutput == ui.FormatYAML {
		return
	}
	if flagQuiet {
		return
	}
	fmt.Fprint(w, ui.RenderBanner(ui.NewColorConfigFromGlobal(), res, appName+" notify"))
}

// shouldSkipUpdateCheck returns true for commands that fetch the latest
// release themselves or where a notification would be noise.
func shouldSkipUpdateCheck(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "check", "notify", "release", "help", "completion", "config", appName:
		return true
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return true
	}
	return false
}
