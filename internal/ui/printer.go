package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Printer centralizes output formatting for commands.
// Text goes through ColorConfig; json and yaml are emitted uncolored.
type Printer struct {
	format string
	out    io.Writer
	Colors *ColorConfig
}

// NewPrinter creates a printer writing to out (stdout when nil).
func NewPrinter(format string, out io.Writer) Printer {
	if out == nil {
		out = os.Stdout
	}
	return Printer{format: normalizeFormat(format), out: out, Colors: NewColorConfig()}
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatJSON, FormatYAML:
		return f
	default:
		return FormatText
	}
}

// ValidFormat reports whether format is one of text, json or yaml.
func ValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Format returns the normalized output format.
func (p Printer) Format() string { return p.format }

// Structured reports whether output is json or yaml.
func (p Printer) Structured() bool { return p.format != FormatText }

// Writer returns the underlying output.
func (p Printer) Writer() io.Writer { return p.out }

// Textf prints formatted text.
func (p Printer) Textf(format string, a ...any) { fmt.Fprintf(p.out, format, a...) }

// Emit writes v as indented JSON or YAML according to the printer format.
func (p Printer) Emit(v any) error {
	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func (p Printer) line(icon, msg string) {
	space := " "
	if len(msg) > 0 && (msg[0] == ' ' || msg[0] == '\t') {
		space = ""
	}
	fmt.Fprintf(p.out, "%s%s%s\n", icon, space, msg)
}

// Success prints a success line with themed prefix.
func (p Printer) Success(msg string) { p.line(p.Colors.StatusIcon("success"), msg) }

// Info prints an informational line.
func (p Printer) Info(msg string) { p.line(p.Colors.StatusIcon("info"), msg) }

// Warn prints a warning line.
func (p Printer) Warn(msg string) {
	icon := p.Colors.Warning("!")
	if !p.Colors.EmojiEnabled {
		icon = p.Colors.Warning("[WARN]")
	}
	p.line(icon, msg)
}

// Error prints an error line.
func (p Printer) Error(msg string) { p.line(p.Colors.StatusIcon("error"), msg) }

// Header prints a section header.
func (p Printer) Header(title string) {
	fmt.Fprintln(p.out, p.Colors.Header(" "+title+" "))
}

// Separator prints a themed separator line of n characters.
func (p Printer) Separator(n int) { fmt.Fprintln(p.out, p.Colors.Separator(n)) }

// Section prints a section header with separator
func (p Printer) Section(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.Colors.SubHeader(title))
	fmt.Fprintln(p.out, p.Colors.Separator(40))
}

// KeyValueLine prints a key-value pair with proper formatting
func (p Printer) KeyValueLine(key, value, colorType string) {
	var coloredValue string
	switch colorType {
	case "blue":
		coloredValue = p.Colors.Info(value)
	case "yellow":
		coloredValue = p.Colors.Warning(value)
	case "green":
		coloredValue = p.Colors.Success(value)
	case "link":
		coloredValue = p.Colors.Link(value)
	case "dim":
		coloredValue = p.Colors.Description(value)
	default:
		coloredValue = p.Colors.Value(value)
	}
	fmt.Fprintf(p.out, "%s %s\n", p.Colors.Label(key+":"), coloredValue)
}
