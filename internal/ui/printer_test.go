package ui

import (
	"bytes"
	"strings"
	"testing"
)

func plainPrinter(format string, buf *bytes.Buffer) Printer {
	p := NewPrinter(format, buf)
	p.Colors = PlainColorConfig()
	return p
}

func TestPrinter_Emit(t *testing.T) {
	v := map[string]any{"status": "available", "latest": "2.0.0"}

	var jb bytes.Buffer
	if err := plainPrinter("JSON", &jb).Emit(v); err != nil {
		t.Fatalf("Emit(json) error = %v", err)
	}
	if !strings.Contains(jb.String(), `"latest": "2.0.0"`) {
		t.Errorf("json output = %q", jb.String())
	}

	var yb bytes.Buffer
	if err := plainPrinter("yaml", &yb).Emit(v); err != nil {
		t.Fatalf("Emit(yaml) error = %v", err)
	}
	if !strings.Contains(yb.String(), "latest: 2.0.0") {
		t.Errorf("yaml output = %q", yb.String())
	}
}

func TestPrinter_Format(t *testing.T) {
	tests := []struct {
		in         string
		want       string
		structured bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" Json ", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"xml", FormatText, false},
	}
	for _, tt := range tests {
		p := NewPrinter(tt.in, &bytes.Buffer{})
		if p.Format() != tt.want || p.Structured() != tt.structured {
			t.Errorf("NewPrinter(%q) format=%q structured=%v", tt.in, p.Format(), p.Structured())
		}
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"", "text", "json", "YAML"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("xml") {
		t.Error("ValidFormat(xml) = true")
	}
}

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter("text", &buf)
	p.Success("done")
	p.Info("checking")
	p.Warn("careful")
	p.Error("broken")
	p.KeyValueLine("Latest", "2.0.0", "green")

	got := buf.String()
	for _, want := range []string{"[OK] done", "[INFO] checking", "[WARN] careful", "[ERR] broken", "Latest: 2.0.0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestColorConfig_Apply(t *testing.T) {
	c := &ColorConfig{Enabled: true, Theme: DefaultTheme()}
	if got := c.Success("ok"); got != BrightGreen+"ok"+Reset {
		t.Errorf("Success() = %q", got)
	}
	if got := c.Value("v"); got != "v" {
		t.Errorf("Value() with empty theme color = %q, want plain", got)
	}
	c.Enabled = false
	if got := c.Success("ok"); got != "ok" {
		t.Errorf("disabled Success() = %q", got)
	}
}

func TestStatusIcon(t *testing.T) {
	c := &ColorConfig{EmojiEnabled: true, Theme: DefaultTheme()}
	if got := c.StatusIcon("up-to-date"); got != "✓" {
		t.Errorf("StatusIcon(up-to-date) = %q", got)
	}
	c.EmojiEnabled = false
	tests := map[string]string{
		"available":  "[NEW]",
		"disabled":   "[OFF]",
		"up-to-date": "[OK]",
		"unknown":    "[ ]",
	}
	for in, want := range tests {
		if got := c.StatusIcon(in); got != want {
			t.Errorf("StatusIcon(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTable(t *testing.T) {
	out := Table(PlainColorConfig(), []string{"NAME", "SIZE"}, [][]string{
		{"creators-guide.apk", "1.5 KiB"},
		{"notes.txt"},
	}, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Table() produced %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME               ") {
		t.Errorf("header not padded: %q", lines[0])
	}
	if !strings.Contains(lines[2], "creators-guide.apk  1.5 KiB") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestErrorMessage_Format(t *testing.T) {
	msg := ErrorMessage{
		Problem: "config file not found",
		Causes:  []string{"wrong --config path"},
		Actions: []string{"creators-guide config"},
	}
	got := msg.Format(PlainColorConfig())
	for _, want := range []string{"[ERR] Error", "Problem: config file not found", "- wrong --config path", "Try:", "- creators-guide config"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q:\n%s", want, got)
		}
	}
}
