package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leo/creators-guide/internal/exitcodes"
	ui "github.com/leo/creators-guide/internal/ui"
	"github.com/leo/creators-guide/internal/update"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Show the latest published release",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd.Context(), newDeps(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

// releaseReport is the structured form of `release`.
type releaseReport struct {
	Found   bool           `json:"found" yaml:"found"`
	Tag     string         `json:"tag,omitempty" yaml:"tag,omitempty"`
	Version string         `json:"version,omitempty" yaml:"version,omitempty"`
	Title   string         `json:"title,omitempty" yaml:"title,omitempty"`
	PageURL string         `json:"page_url,omitempty" yaml:"page_url,omitempty"`
	Notes   string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Package string         `json:"package_url,omitempty" yaml:"package_url,omitempty"`
	Assets  []update.Asset `json:"assets,omitempty" yaml:"assets,omitempty"`
}

func runRelease(ctx context.Context, d *Deps) error {
	cfg := d.Cfg.Update
	if strings.TrimSpace(cfg.Owner) == "" {
		return exitcodes.InvalidArgsErrorf("no release owner configured: pass --owner or set update.owner")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	release := d.Fetcher.FetchLatest(ctx, cfg.Owner, cfg.Repo)
	p := d.Printer

	if release == nil {
		if p.Structured() {
			return p.Emit(releaseReport{Found: false})
		}
		p.Info("no release found for " + cfg.Owner + "/" + cfg.Repo)
		return nil
	}

	report := releaseReport{
		Found:   true,
		Tag:     release.Tag,
		Version: release.Version(),
		Title:   release.Title,
		PageURL: release.PageURL,
		Notes:   release.Notes,
		Assets:  release.Assets,
	}
	if a := update.FindPackageAsset(release, cfg.PackageExtension, cfg.PackageMediaType); a != nil {
		report.Package = a.DownloadURL
	}

	if p.Structured() {
		return p.Emit(report)
	}

	printRelease(p, cfg.Owner+"/"+cfg.Repo, report)

	// The release is already in hand, so the banner reuses it instead of a
	// second request from the background check.
	if cfg.ChecksEnabled && !flagQuiet {
		res := update.NewChecker(cfg, fetchedRelease{release}, d.Info,
			update.WithCheckerLogger(d.Logger)).Check(ctx)
		p.Textf("%s", ui.RenderBanner(p.Colors, res, appName+" notify"))
	}
	return nil
}

func printRelease(p ui.Printer, name string, report releaseReport) {
	p.Header(name)
	p.KeyValueLine("Tag", report.Tag, "green")
	if report.Title != "" {
		p.KeyValueLine("Title", report.Title, "")
	}
	p.KeyValueLine("Page", report.PageURL, "link")
	if report.Package != "" {
		p.KeyValueLine("Package", report.Package, "link")
	}
	if notes := ui.TrimNotes(report.Notes, 12); notes != "" {
		p.Section("Release notes")
		p.Textf("%s\n", notes)
	}

	p.Section("Assets")
	if len(report.Assets) == 0 {
		p.Textf("%s\n", p.Colors.Description("(none)"))
		return
	}
	rows := make([][]string, 0, len(report.Assets))
	for _, a := range report.Assets {
		rows = append(rows, []string{a.Filename, ui.FormatSize(a.SizeBytes), a.MediaType})
	}
	p.Textf("%s", ui.Table(p.Colors, []string{"NAME", "SIZE", "TYPE"}, rows, nil))
}

// fetchedRelease serves a release that was already fetched.
type fetchedRelease struct{ release *update.Release }

func (f fetchedRelease) FetchLatest(context.Context, string, string) *update.Release {
	return f.release
}
