package update

import (
	"context"
	"strings"

	"github.com/leo/creators-guide/internal/config"
	"github.com/leo/creators-guide/internal/logger"
)

// Runner performs a single update check.
type Runner interface {
	Check(ctx context.Context) Result
}

// CheckFunc adapts a plain function to Runner.
type CheckFunc func(ctx context.Context) Result

// Check calls f(ctx).
func (f CheckFunc) Check(ctx context.Context) Result { return f(ctx) }

// Checker decides whether the running application has a pending update.
// It holds no mutable state; concurrent checks run independently.
type Checker struct {
	cfg     config.Update
	fetcher ReleaseFetcher
	info    VersionInfo
	logger  *logger.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckerLogger sets the logger for check decisions and recovered failures.
func WithCheckerLogger(l *logger.Logger) CheckerOption {
	return func(c *Checker) { c.logger = l }
}

// NewChecker creates a checker. A nil info reports the default version.
func NewChecker(cfg config.Update, fetcher ReleaseFetcher, info VersionInfo, opts ...CheckerOption) *Checker {
	if info == nil {
		info = StaticVersion{Name: DefaultVersionName, Code: DefaultVersionCode}
	}
	c := &Checker{
		cfg:     cfg,
		fetcher: fetcher,
		info:    info,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs one update check. It never fails: a disabled configuration
// yields StatusDisabled without touching the network, and every failure
// after that, including a panic, yields StatusUpToDate.
func (c *Checker) Check(ctx context.Context) (result Result) {
	if !c.cfg.ChecksEnabled {
		c.logger.Debug().Msg("update checks disabled")
		return Result{Status: StatusDisabled}
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("update check failed")
			result = Result{Status: StatusUpToDate}
		}
	}()

	return c.check(ctx)
}

// CheckAsync runs Check on its own goroutine. The returned channel yields
// exactly one Result and is then closed. Callers that go away may simply
// stop listening; the buffered send never blocks.
func (c *Checker) CheckAsync(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- c.Check(ctx)
	}()
	return ch
}

func (c *Checker) check(ctx context.Context) Result {
	release := c.fetcher.FetchLatest(ctx, c.cfg.Owner, c.cfg.Repo)
	if release == nil {
		return Result{Status: StatusUpToDate}
	}

	latestVersion := release.Version()
	currentVersion := c.info.VersionName()

	if HasPreReleaseSuffix(release.Tag) {
		c.logger.Debug().Str("tag", release.Tag).Msg("pre-release suffix ignored by version ordering")
	}

	if !IsNewer(latestVersion, currentVersion) {
		c.logger.Debug().
			Str("current", currentVersion).
			Str("latest", latestVersion).
			Msg("already up to date")
		return Result{
			Status:         StatusUpToDate,
			CurrentVersion: currentVersion,
			LatestVersion:  latestVersion,
		}
	}

	assetURL := release.PageURL
	if asset := FindPackageAsset(release, c.cfg.PackageExtension, c.cfg.PackageMediaType); asset != nil {
		assetURL = asset.DownloadURL
	}

	c.logger.Debug().
		Str("current", currentVersion).
		Str("latest", latestVersion).
		Str("asset_url", assetURL).
		Msg("update available")

	return Result{
		Status:            StatusAvailable,
		CurrentVersion:    currentVersion,
		LatestVersion:     latestVersion,
		LatestVersionCode: c.info.VersionCode() + 1,
		ReleaseNotes:      release.Notes,
		DownloadURL:       release.PageURL,
		AssetURL:          assetURL,
	}
}

// FindPackageAsset returns the first asset whose filename ends with ext
// (case-insensitive) and whose media type equals mediaType, or nil.
func FindPackageAsset(release *Release, ext, mediaType string) *Asset {
	if release == nil || ext == "" {
		return nil
	}
	ext = strings.ToLower(ext)
	for i := range release.Assets {
		asset := &release.Assets[i]
		if strings.HasSuffix(strings.ToLower(asset.Filename), ext) && asset.MediaType == mediaType {
			return asset
		}
	}
	return nil
}
