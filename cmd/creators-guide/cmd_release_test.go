package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/leo/creators-guide/internal/exitcodes"
	"github.com/leo/creators-guide/internal/update"
)

func sampleRelease() *update.Release {
	return &update.Release{
		Tag:     "v2.0.0",
		Title:   "Spring update",
		Notes:   "New guides",
		PageURL: "https://github.com/leo/Creators-Guide/releases/tag/v2.0.0",
		Assets: []update.Asset{
			{Filename: "creators-guide.apk", DownloadURL: "https://example.com/creators-guide.apk", MediaType: "application/vnd.android.package-archive", SizeBytes: 1536},
			{Filename: "checksums.txt", DownloadURL: "https://example.com/checksums.txt", MediaType: "text/plain", SizeBytes: 64},
		},
	}
}

func TestRunRelease_Text(t *testing.T) {
	var out bytes.Buffer
	d := newTestDeps(t, "text", &out)
	d.Fetcher = &fakeFetcher{release: sampleRelease()}

	if err := runRelease(context.Background(), d); err != nil {
		t.Fatalf("runRelease() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"leo/Creators-Guide",
		"Tag: v2.0.0",
		"Package: https://example.com/creators-guide.apk",
		"New guides",
		"creators-guide.apk  1.5 KiB",
		"checksums.txt",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunRelease_BannerReusesFetchedRelease(t *testing.T) {
	saveFlags(t)
	flagQuiet = false

	var out bytes.Buffer
	d := newTestDeps(t, "text", &out)
	f := &fakeFetcher{release: sampleRelease()}
	d.Fetcher = f

	if err := runRelease(context.Background(), d); err != nil {
		t.Fatalf("runRelease() error = %v", err)
	}
	if f.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", f.calls)
	}
	if !strings.Contains(out.String(), "Update available: 1.0.0 -> 2.0.0") {
		t.Errorf("output missing banner:\n%s", out.String())
	}

	out.Reset()
	d.Cfg.Update.ChecksEnabled = false
	if err := runRelease(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Update available") {
		t.Errorf("banner shown with checks disabled:\n%s", out.String())
	}
}

func TestRunRelease_NotFound(t *testing.T) {
	var out bytes.Buffer
	d := newTestDeps(t, "text", &out)

	if err := runRelease(context.Background(), d); err != nil {
		t.Fatalf("runRelease() error = %v", err)
	}
	if !strings.Contains(out.String(), "no release found for leo/Creators-Guide") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	d = newTestDeps(t, "json", &out)
	if err := runRelease(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"found": false`) {
		t.Errorf("json = %q", out.String())
	}
}

func TestRunRelease_JSON(t *testing.T) {
	var out bytes.Buffer
	d := newTestDeps(t, "json", &out)
	d.Fetcher = &fakeFetcher{release: sampleRelease()}

	if err := runRelease(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"found": true`, `"version": "2.0.0"`, `"size_bytes": 1536`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("json missing %s:\n%s", want, out.String())
		}
	}
}

func TestRunRelease_RequiresOwner(t *testing.T) {
	var out bytes.Buffer
	d := newTestDeps(t, "text", &out)
	d.Cfg.Update.Owner = " "
	f := &fakeFetcher{}
	d.Fetcher = f

	err := runRelease(context.Background(), d)
	if code := exitcodes.CodeForError(err); code != exitcodes.InvalidArgs {
		t.Errorf("CodeForError() = %d, want %d", code, exitcodes.InvalidArgs)
	}
	if f.calls != 0 {
		t.Error("fetcher called without an owner")
	}
}
