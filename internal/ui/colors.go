package ui

import (
	"os"
	"strings"
)

// Color codes for terminal output
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Cyan = "\033[36m"

	BrightBlack   = "\033[90m"
	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightCyan    = "\033[96m"
	BrightMagenta = "\033[95m"
)

// Theme defines the color scheme for different UI elements
type Theme struct {
	// Status indicators
	Success string
	Warning string
	Error   string
	Info    string

	// UI elements
	Header      string
	SubHeader   string
	Label       string
	Value       string
	Link        string
	Description string
	Separator   string
	Pending     string

	Version string
}

// DefaultTheme returns the default color theme
func DefaultTheme() *Theme {
	return &Theme{
		Success: BrightGreen,
		Warning: BrightYellow,
		Error:   BrightRed,
		Info:    BrightCyan,

		Header:      Bold + BrightCyan,
		SubHeader:   Bold + Cyan,
		Label:       Bold, // terminal default foreground stays readable on light backgrounds
		Value:       "",
		Link:        BrightMagenta,
		Description: BrightBlack,
		Separator:   BrightBlack,
		Pending:     BrightBlack,

		Version: Bold + BrightGreen,
	}
}

// ColorConfig manages color output settings
type ColorConfig struct {
	Enabled      bool
	EmojiEnabled bool
	Theme        *Theme
}

// NewColorConfig creates a new color configuration with default settings
func NewColorConfig() *ColorConfig {
	noColor := os.Getenv("NO_COLOR") != ""
	term := os.Getenv("TERM")

	return &ColorConfig{
		Enabled:      !noColor && term != "dumb" && term != "",
		EmojiEnabled: true,
		Theme:        DefaultTheme(),
	}
}

// PlainColorConfig returns a config with colors and emoji disabled.
func PlainColorConfig() *ColorConfig {
	return &ColorConfig{Theme: DefaultTheme()}
}

// Apply applies a color to text if colors are enabled
func (c *ColorConfig) Apply(color, text string) string {
	if !c.Enabled || color == "" {
		return text
	}
	return color + text + Reset
}

func (c *ColorConfig) Success(text string) string     { return c.Apply(c.Theme.Success, text) }
func (c *ColorConfig) Warning(text string) string     { return c.Apply(c.Theme.Warning, text) }
func (c *ColorConfig) Error(text string) string       { return c.Apply(c.Theme.Error, text) }
func (c *ColorConfig) Info(text string) string        { return c.Apply(c.Theme.Info, text) }
func (c *ColorConfig) Header(text string) string      { return c.Apply(c.Theme.Header, text) }
func (c *ColorConfig) SubHeader(text string) string   { return c.Apply(c.Theme.SubHeader, text) }
func (c *ColorConfig) Label(text string) string       { return c.Apply(c.Theme.Label, text) }
func (c *ColorConfig) Value(text string) string       { return c.Apply(c.Theme.Value, text) }
func (c *ColorConfig) Link(text string) string        { return c.Apply(c.Theme.Link, text) }
func (c *ColorConfig) Description(text string) string { return c.Apply(c.Theme.Description, text) }
func (c *ColorConfig) Version(text string) string     { return c.Apply(c.Theme.Version, text) }

// Separator returns a colored separator line
func (c *ColorConfig) Separator(width int) string {
	ch := "─"
	if !c.EmojiEnabled {
		ch = "-"
	}
	return c.Apply(c.Theme.Separator, strings.Repeat(ch, width))
}

// StatusIcon returns a colored icon for a check status name
// ("up-to-date", "available", "disabled", "checking") or a generic level.
func (c *ColorConfig) StatusIcon(status string) string {
	type icon struct{ emoji, plain, color string }
	var ic icon
	switch strings.ToLower(status) {
	case "success", "up-to-date":
		ic = icon{"✓", "[OK]", c.Theme.Success}
	case "available", "warning":
		ic = icon{"⬆", "[NEW]", c.Theme.Warning}
	case "error", "failed":
		ic = icon{"✗", "[ERR]", c.Theme.Error}
	case "disabled":
		ic = icon{"⏸", "[OFF]", c.Theme.Pending}
	case "info", "checking":
		ic = icon{"ℹ", "[INFO]", c.Theme.Info}
	default:
		ic = icon{"○", "[ ]", c.Theme.Pending}
	}
	if c.EmojiEnabled {
		return c.Apply(ic.color, ic.emoji)
	}
	return c.Apply(ic.color, ic.plain)
}
