package ui

import (
	"fmt"
	"strings"

	"github.com/leo/creators-guide/internal/update"
)

// Notification titles and bodies shared by the text and interactive views.
const (
	TitleDisabled  = "Update Checks Disabled"
	TitleChecking  = "Checking for updates..."
	TitleUpToDate  = "You're using the latest version!"
	TitleAvailable = "New Version Available!"

	bodyDisabled = "Update checking is currently disabled. Enable it with --enable-checks or update.checks-enabled to check for new versions."
)

// maxNoteLines caps release notes in the compact views.
const maxNoteLines = 12

// AvailableLine is the one-line summary of a pending update.
func AvailableLine(r update.Result) string {
	return fmt.Sprintf("Version %s is now available", r.LatestVersion)
}

// RenderChecking renders the in-flight state.
func RenderChecking(c *ColorConfig) string {
	return fmt.Sprintf("%s %s\n", c.StatusIcon("checking"), c.Info(TitleChecking))
}

// RenderResult renders a check result as plain text for non-interactive output.
func RenderResult(c *ColorConfig, r update.Result) string {
	var b strings.Builder
	switch r.Status {
	case update.StatusDisabled:
		fmt.Fprintf(&b, "%s %s\n", c.StatusIcon("disabled"), c.Header(TitleDisabled))
		fmt.Fprintf(&b, "  %s\n", c.Description(bodyDisabled))

	case update.StatusAvailable:
		fmt.Fprintf(&b, "%s %s\n", c.StatusIcon("available"), c.Header(TitleAvailable))
		fmt.Fprintf(&b, "  %s\n", AvailableLine(r))
		fmt.Fprintf(&b, "  %s %s  %s %s\n",
			c.Label("Current:"), c.Value(r.CurrentVersion),
			c.Label("Latest:"), c.Version(r.LatestVersion))
		if notes := TrimNotes(r.ReleaseNotes, maxNoteLines); notes != "" {
			b.WriteString("\n")
			for _, line := range strings.Split(notes, "\n") {
				fmt.Fprintf(&b, "  %s\n", line)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s %s\n", c.Label("Download:"), c.Link(r.TargetURL()))
		if r.AssetURL != "" && r.AssetURL != r.DownloadURL && r.DownloadURL != "" {
			fmt.Fprintf(&b, "  %s %s\n", c.Label("Release:"), c.Link(r.DownloadURL))
		}

	default:
		fmt.Fprintf(&b, "%s %s\n", c.StatusIcon("up-to-date"), c.Success(TitleUpToDate))
		if r.CurrentVersion != "" {
			fmt.Fprintf(&b, "  %s %s\n", c.Label("Current:"), c.Value(r.CurrentVersion))
		}
	}
	return b.String()
}

// RenderBanner renders the short block printed after other commands finish.
func RenderBanner(c *ColorConfig, r update.Result, checkCmd string) string {
	if r.Status != update.StatusAvailable {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(c.Separator(50))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s %s -> %s\n",
		c.StatusIcon("available"), c.Warning("Update available:"),
		r.CurrentVersion, c.Version(r.LatestVersion))
	fmt.Fprintf(&b, "  Run: %s\n", c.SubHeader(checkCmd))
	b.WriteString(c.Separator(50))
	b.WriteString("\n")
	return b.String()
}

// TrimNotes trims surrounding blank space and keeps at most maxLines lines.
func TrimNotes(notes string, maxLines int) string {
	notes = strings.TrimSpace(strings.ReplaceAll(notes, "\r\n", "\n"))
	if notes == "" || maxLines <= 0 {
		return notes
	}
	lines := strings.Split(notes, "\n")
	if len(lines) <= maxLines {
		return notes
	}
	return strings.Join(lines[:maxLines], "\n") + "\n…"
}
