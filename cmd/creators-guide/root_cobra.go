package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leo/creators-guide/internal/config"
	"github.com/leo/creators-guide/internal/exitcodes"
	"github.com/leo/creators-guide/internal/logger"
	ui "github.com/leo/creators-guide/internal/ui"
)

// Version information - set via -ldflags during build
var (
	Version     = "dev"
	VersionCode = "1"
	Commit      = "unknown"
	BuildDate   = "unknown"
)

const appName = "creators-guide"

// loadedCfg and appLogger are set once in PersistentPreRunE.
var (
	loadedCfg config.Config
	appLogger = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Creators Guide release checker",
	Long:          "Check the Creators Guide release feed for a newer version and show where to download it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.InitGlobal(ui.Config{
			NoColor: flagNoColor,
			NoEmoji: flagNoEmoji,
			Quiet:   flagQuiet,
			Debug:   flagDebug,
		})

		// lipgloss and glamour read NO_COLOR themselves
		if flagNoColor {
			_ = os.Setenv("NO_COLOR", "1")
		}

		if !ui.ValidFormat(flagOutput) {
			return exitcodes.InvalidArgsErrorf("invalid --output %q: want text, json or yaml", flagOutput)
		}

		cfg, err := loadCfg(cmd)
		if err != nil {
			printConfigError(err)
			return silentErr{err}
		}
		loadedCfg = cfg
		appLogger = logger.New(os.Stderr, cfg.LogLevel)
		appLogger.Debug().
			Str("home", cfg.HomeDir).
			Str("owner", cfg.Update.Owner).
			Str("repo", cfg.Update.Repo).
			Bool("checks_enabled", cfg.Update.ChecksEnabled).
			Msg("configuration loaded")

		if !shouldSkipUpdateCheck(cmd) {
			startBackgroundCheck(cmd.Context(), newDeps(os.Stdout))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shouldSkipUpdateCheck(cmd) {
			return
		}
		if res, ok := backgroundCheckResult(); ok {
			showUpdateNotification(os.Stdout, res)
		}
	},
}

var (
	flagConfig       string
	flagHome         string
	flagOwner        string
	flagRepo         string
	flagAPIURL       string
	flagEnableChecks bool
	flagOutput       string
	flagQuiet        bool
	flagDebug        bool
	flagNoColor      bool
	flagNoEmoji      bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default <home>/config.yaml)")
	pf.StringVar(&flagHome, "home", "", "Home directory for config.yaml and .env (overrides HOME_DIR)")
	pf.StringVar(&flagOwner, "owner", "", "Release repository owner")
	pf.StringVar(&flagRepo, "repo", "", "Release repository name")
	pf.StringVar(&flagAPIURL, "api-url", "", "Release API base URL")
	pf.BoolVar(&flagEnableChecks, "enable-checks", false, "Enable update checks for this run")
	pf.StringVarP(&flagOutput, "output", "o", "text", "Output format: json|yaml|text")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode: minimal output (suppresses extras)")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "Debug output: extra diagnostic logs")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	pf.BoolVar(&flagNoEmoji, "no-emoji", false, "Disable emoji output")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			fmt.Fprintln(os.Stdout, cmd.UsageString())
			return
		}
		// Help runs before PersistentPreRun, so configure colors here
		c := ui.NewColorConfig()
		c.Enabled = c.Enabled && !flagNoColor
		c.EmojiEnabled = c.EmojiEnabled && !flagNoEmoji
		w := os.Stdout

		const cmdWidth = 28
		row := func(name, desc string) string {
			return fmt.Sprintf("  %s%s%s", c.SubHeader(name), strings.Repeat(" ", max(1, cmdWidth-len(name))), c.Description(desc))
		}

		fmt.Fprintln(w, c.Header(" Creators Guide "))
		fmt.Fprintln(w, c.Description(rootCmd.Long))
		fmt.Fprintln(w, c.Separator(50))
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.SubHeader("USAGE"))
		fmt.Fprintf(w, "  %s <command> [flags]\n\n", appName)

		fmt.Fprintln(w, c.SubHeader("Updates"))
		fmt.Fprintln(w, row("check [--strict]", "Check once and print the result"))
		fmt.Fprintln(w, row("notify", "Interactive update notification"))
		fmt.Fprintln(w, row("release", "Show the latest published release"))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Utilities"))
		fmt.Fprintln(w, row("version", "Show version information"))
		fmt.Fprintln(w, row("config", "Print the effective configuration"))
		fmt.Fprintln(w, row("completion <shell>", "Generate shell completion"))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Flags"))
		fmt.Fprint(w, rootCmd.PersistentFlags().FlagUsages())
	})
}

// silentErr marks an error whose message was already shown to the user.
type silentErr struct{ err error }

func (s silentErr) Error() string { return s.err.Error() }
func (s silentErr) Unwrap() error { return s.err }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var se silentErr
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitcodes.CodeForError(err))
	}
}

// loadCfg layers config files, .env and environment via internal/config
// and applies the persistent flags the user actually set.
func loadCfg(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	overrides := map[string]any{}
	if flags.Changed("owner") {
		overrides[config.KeyOwner] = flagOwner
	}
	if flags.Changed("repo") {
		overrides[config.KeyRepo] = flagRepo
	}
	if flags.Changed("api-url") {
		overrides[config.KeyAPIBaseURL] = flagAPIURL
	}
	if flags.Changed("enable-checks") {
		overrides[config.KeyChecksEnabled] = flagEnableChecks
	}
	if flagDebug {
		overrides[config.KeyLogLevel] = "debug"
	}

	opts := []config.Option{config.WithOverrides(overrides)}
	if flagHome != "" {
		opts = append(opts, config.WithHomeDir(flagHome))
	}
	if flagConfig != "" {
		opts = append(opts, config.WithConfigFile(flagConfig))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return config.Config{}, exitcodes.ConfigErr("failed to load config", err)
	}
	if err := cfg.Update.Validate(); err != nil {
		return config.Config{}, exitcodes.ConfigErr("invalid update configuration", err)
	}
	return cfg, nil
}

func printConfigError(err error) {
	ui.PrintError(os.Stderr, ui.ErrorMessage{
		Problem: err.Error(),
		Causes: []string{
			"malformed config.yaml or .env",
			"--config points at a missing file",
			"update checks enabled without a valid owner/repo",
		},
		Actions: []string{
			fmt.Sprintf("%s config --home <dir>", appName),
			fmt.Sprintf("set %s and %s", config.EnvName(config.KeyOwner), config.EnvName(config.KeyRepo)),
		},
	})
}
