package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leo/creators-guide/internal/config"
	ui "github.com/leo/creators-guide/internal/ui"
)

func TestRunConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Update.Owner = "leo"

	var out bytes.Buffer
	if err := runConfig(ui.NewPrinter("text", &out), cfg); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"update:", "owner: leo", "checks-enabled: false", "api-base-url: https://api.github.com"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("yaml missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := runConfig(ui.NewPrinter("json", &out), cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"checks_enabled": false`) {
		t.Errorf("json = %s", out.String())
	}
}
