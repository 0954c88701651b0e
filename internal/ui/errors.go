package ui

import (
	"fmt"
	"io"
	"strings"
)

// ErrorMessage represents a structured, actionable error to present to users.
type ErrorMessage struct {
	Problem string   // one-line problem statement
	Causes  []string // possible causes
	Actions []string // actionable steps to resolve
}

// Format renders the error using the color theme. It does not include ANSI
// codes when colors are disabled (NO_COLOR or dumb terminal).
func (e ErrorMessage) Format(c *ColorConfig) string {
	var b strings.Builder
	b.WriteString(c.StatusIcon("error"))
	b.WriteString(" ")
	b.WriteString(c.Header("Error"))
	b.WriteString("\n")
	if e.Problem != "" {
		fmt.Fprintf(&b, "  %s: %s\n", c.Label("Problem"), e.Problem)
	}
	writeList(&b, c, "Possible causes", "•", e.Causes)
	writeList(&b, c, "Try", "→", e.Actions)
	return b.String()
}

func writeList(b *strings.Builder, c *ColorConfig, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	if !c.EmojiEnabled {
		bullet = "-"
	}
	fmt.Fprintf(b, "  %s:\n", c.Label(title))
	for _, it := range items {
		fmt.Fprintf(b, "   %s %s\n", bullet, it)
	}
}

// PrintError writes the structured error to w using the global theme.
func PrintError(w io.Writer, e ErrorMessage) {
	fmt.Fprintln(w, e.Format(NewColorConfigFromGlobal()))
}
