package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/leo/creators-guide/internal/update"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := runVersion(newTestDeps(t, "text", &out)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "creators-guide 1.0.0 (code 3,") {
		t.Errorf("text = %q", out.String())
	}

	out.Reset()
	if err := runVersion(newTestDeps(t, "json", &out)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"version": "1.0.0"`, `"version_code": 3`, `"commit"`, `"build_date"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("json missing %s:\n%s", want, out.String())
		}
	}
}

func TestShowUpdateNotification(t *testing.T) {
	saveFlags(t)
	res := availableResult()

	tests := []struct {
		name   string
		output string
		quiet  bool
		shown  bool
	}{
		{"text", "text", false, true},
		{"json suppressed", "json", false, false},
		{"yaml suppressed", "yaml", false, false},
		{"quiet suppressed", "text", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagOutput, flagQuiet = tt.output, tt.quiet
			var buf bytes.Buffer
			showUpdateNotification(&buf, res)
			if got := strings.Contains(buf.String(), "1.0.0 -> "); got != tt.shown {
				t.Errorf("shown = %v, want %v (%q)", got, tt.shown, buf.String())
			}
		})
	}

	flagOutput, flagQuiet = "text", false
	var buf bytes.Buffer
	showUpdateNotification(&buf, update.Result{Status: update.StatusUpToDate})
	if buf.Len() != 0 {
		t.Errorf("up-to-date printed %q", buf.String())
	}
}

// asyncStub satisfies both update.Runner and asyncChecker.
type asyncStub struct {
	res   update.Result
	delay time.Duration
}

func (s asyncStub) Check(ctx context.Context) update.Result { return s.res }

func (s asyncStub) CheckAsync(ctx context.Context) <-chan update.Result {
	ch := make(chan update.Result, 1)
	go func() {
		defer close(ch)
		time.Sleep(s.delay)
		ch <- s.res
	}()
	return ch
}

func TestBackgroundCheck(t *testing.T) {
	d := newTestDeps(t, "text", &bytes.Buffer{})
	d.Checker = asyncStub{res: availableResult()}

	startBackgroundCheck(context.Background(), d)
	res, ok := backgroundCheckResult()
	if !ok || !res.UpdateAvailable() {
		t.Fatalf("backgroundCheckResult() = %+v, %v", res, ok)
	}

	// The channel is consumed once.
	if _, ok := backgroundCheckResult(); ok {
		t.Error("second read should report nothing")
	}
}

func TestBackgroundCheck_SlowResultDropped(t *testing.T) {
	d := newTestDeps(t, "text", &bytes.Buffer{})
	d.Checker = asyncStub{res: availableResult(), delay: 2 * time.Second}

	startBackgroundCheck(context.Background(), d)
	start := time.Now()
	if _, ok := backgroundCheckResult(); ok {
		t.Error("slow check should not block the command")
	}
	if time.Since(start) > time.Second {
		t.Error("waited too long for the background check")
	}
}

func TestBackgroundCheck_DisabledSkips(t *testing.T) {
	d := newTestDeps(t, "text", &bytes.Buffer{})
	d.Cfg.Update.ChecksEnabled = false
	d.Checker = asyncStub{res: availableResult()}

	startBackgroundCheck(context.Background(), d)
	if _, ok := backgroundCheckResult(); ok {
		t.Error("disabled config should not start a background check")
	}
}
