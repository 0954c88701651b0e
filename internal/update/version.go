package update

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// CompareVersions orders two dot-delimited version strings numerically.
// It returns 1 if a > b, -1 if a < b and 0 when equal. Non-numeric or missing
// components count as 0, so "1.0" == "1.0.0" and "1.2.x" == "1.2.0".
// A suffixed component such as "1-beta" is non-numeric and counts as 0.
func CompareVersions(a, b string) int {
	pa := versionParts(a)
	pb := versionParts(b)

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		x, y := partAt(pa, i), partAt(pb, i)
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

// IsNewer returns true if latest is newer than current.
func IsNewer(latest, current string) bool {
	return CompareVersions(latest, current) > 0
}

func versionParts(v string) []int {
	fields := strings.Split(v, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			n = 0
		}
		parts[i] = n
	}
	return parts
}

func partAt(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

// HasPreReleaseSuffix reports whether tag is a semantic version carrying a
// pre-release or build suffix (v2.0.0-beta.1, 1.0.0+build5). CompareVersions
// ignores such suffixes, so callers only use this for diagnostics.
func HasPreReleaseSuffix(tag string) bool {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	if !semver.IsValid(tag) {
		return false
	}
	return semver.Prerelease(tag) != "" || semver.Build(tag) != ""
}
