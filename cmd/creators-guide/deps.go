package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"github.com/leo/creators-guide/internal/config"
	"github.com/leo/creators-guide/internal/logger"
	ui "github.com/leo/creators-guide/internal/ui"
	"github.com/leo/creators-guide/internal/update"
)

// Deps holds all injectable dependencies for command handlers.
type Deps struct {
	Cfg     config.Config
	Info    update.VersionInfo
	Fetcher update.ReleaseFetcher
	Checker update.Runner
	Opener  ui.Opener
	Printer ui.Printer
	Logger  *logger.Logger
}

// newDeps wires production dependencies from the loaded configuration.
func newDeps(out io.Writer) *Deps {
	cfg := loadedCfg
	info := update.NewBuildInfo(Version, VersionCode, appLogger.WithComponent("version"))
	client := update.NewClient(cfg.Update.APIBaseURL,
		update.WithLogger(appLogger.WithComponent("release-client")),
		update.WithUserAgent(appName+"/"+info.VersionName()),
	)
	checker := update.NewChecker(cfg.Update, client, info,
		update.WithCheckerLogger(appLogger.WithComponent("update-checker")))

	return &Deps{
		Cfg:     cfg,
		Info:    info,
		Fetcher: client,
		Checker: checker,
		Opener:  newBrowserOpener(),
		Printer: ui.NewPrinterFromGlobal(flagOutput, out),
		Logger:  appLogger,
	}
}

// browserOpener hands URLs to the platform's default handler.
type browserOpener struct {
	goos  string
	start func(name string, args ...string) error
}

func newBrowserOpener() browserOpener {
	return browserOpener{goos: runtime.GOOS, start: startDetached}
}

// Open validates the URL and launches the platform handler without waiting.
func (o browserOpener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}
	name, args := openCommand(o.goos, u.String())
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout, cmd.Stderr = nil, nil
	cmd.Stdin = os.Stdin
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
