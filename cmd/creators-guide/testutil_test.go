package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/leo/creators-guide/internal/config"
	"github.com/leo/creators-guide/internal/logger"
	ui "github.com/leo/creators-guide/internal/ui"
	"github.com/leo/creators-guide/internal/update"
)

// fakeFetcher returns a fixed release.
type fakeFetcher struct {
	release *update.Release
	calls   int
}

func (f *fakeFetcher) FetchLatest(ctx context.Context, owner, repo string) *update.Release {
	f.calls++
	return f.release
}

// fakeOpener records opened URLs.
type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

func staticCheck(res update.Result) update.CheckFunc {
	return func(ctx context.Context) update.Result { return res }
}

// newTestDeps builds Deps around buf with colors and emoji disabled.
func newTestDeps(t *testing.T, format string, buf *bytes.Buffer) *Deps {
	t.Helper()
	p := ui.NewPrinter(format, buf)
	p.Colors = ui.PlainColorConfig()

	cfg := config.Defaults()
	cfg.Update.Owner = "leo"
	cfg.Update.ChecksEnabled = true

	return &Deps{
		Cfg:     cfg,
		Info:    update.StaticVersion{Name: "1.0.0", Code: 3},
		Fetcher: &fakeFetcher{},
		Checker: staticCheck(update.Result{Status: update.StatusUpToDate, CurrentVersion: "1.0.0"}),
		Opener:  &fakeOpener{},
		Printer: p,
		Logger:  logger.Nop(),
	}
}

// saveFlags restores the package-level flag variables after a test.
func saveFlags(t *testing.T) {
	t.Helper()
	output, quiet, noColor := flagOutput, flagQuiet, flagNoColor
	home, cfgPath, debug := flagHome, flagConfig, flagDebug
	t.Cleanup(func() {
		flagOutput, flagQuiet, flagNoColor = output, quiet, noColor
		flagHome, flagConfig, flagDebug = home, cfgPath, debug
		for _, name := range []string{"owner", "repo", "api-url", "enable-checks"} {
			f := rootCmd.PersistentFlags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
}
