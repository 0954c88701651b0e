package update

import (
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/leo/creators-guide/internal/logger"
)

const (
	// DefaultVersionName is reported when the running version is unknown.
	DefaultVersionName = "1.0"
	// DefaultVersionCode is reported when the build number is unknown.
	DefaultVersionCode = 1
)

// VersionInfo supplies the running application's version. Implementations
// must not fail: lookup problems resolve to the documented defaults.
type VersionInfo interface {
	VersionName() string
	VersionCode() int
}

// StaticVersion is a fixed VersionInfo.
type StaticVersion struct {
	Name string
	Code int
}

func (s StaticVersion) VersionName() string { return s.Name }
func (s StaticVersion) VersionCode() int    { return s.Code }

// BuildInfo reads the version stamped into the binary with -ldflags,
// falling back to the module version recorded by the Go toolchain.
type BuildInfo struct {
	Name string // e.g. "1.4.0" or "v1.4.0"
	Code string // integer build number as text

	logger        *logger.Logger
	readBuildInfo func() (*debug.BuildInfo, bool)
}

// NewBuildInfo creates a BuildInfo from ldflags-provided strings.
func NewBuildInfo(name, code string, l *logger.Logger) *BuildInfo {
	if l == nil {
		l = logger.Nop()
	}
	return &BuildInfo{
		Name:          name,
		Code:          code,
		logger:        l,
		readBuildInfo: debug.ReadBuildInfo,
	}
}

// VersionName returns the version without a "v" prefix, or DefaultVersionName.
func (b *BuildInfo) VersionName() string {
	if name := normalizeVersionName(b.Name); name != "" {
		return name
	}
	if b.readBuildInfo != nil {
		if bi, ok := b.readBuildInfo(); ok && bi != nil {
			if name := normalizeVersionName(bi.Main.Version); name != "" {
				return name
			}
		}
	}
	b.log().Debug().Str("stamped", b.Name).Str("fallback", DefaultVersionName).Msg("version name unavailable")
	return DefaultVersionName
}

// VersionCode returns the stamped build number, or DefaultVersionCode.
func (b *BuildInfo) VersionCode() int {
	code, err := strconv.Atoi(strings.TrimSpace(b.Code))
	if err != nil || code <= 0 {
		b.log().Debug().Str("stamped", b.Code).Int("fallback", DefaultVersionCode).Msg("version code unavailable")
		return DefaultVersionCode
	}
	return code
}

func (b *BuildInfo) log() *logger.Logger {
	if b.logger == nil {
		return logger.Nop()
	}
	return b.logger
}

// normalizeVersionName drops placeholder versions used by dev builds.
func normalizeVersionName(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "dev", "unknown", "(devel)":
		return ""
	}
	return strings.TrimPrefix(v, "v")
}
