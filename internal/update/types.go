package update

import "strings"

// Release is the latest published release of a repository.
// A Release always carries a non-empty Tag; a failed fetch yields no Release.
type Release struct {
	Tag     string  `json:"tag" yaml:"tag"`
	Title   string  `json:"title" yaml:"title"`
	Notes   string  `json:"notes" yaml:"notes"` // Changelog/release notes, may be empty
	PageURL string  `json:"page_url" yaml:"page_url"`
	Assets  []Asset `json:"assets" yaml:"assets"` // API response order
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Filename    string `json:"filename" yaml:"filename"`
	DownloadURL string `json:"download_url" yaml:"download_url"`
	MediaType   string `json:"media_type" yaml:"media_type"`
	SizeBytes   int64  `json:"size_bytes" yaml:"size_bytes"`
}

// Version returns the tag with a single leading "v" removed.
func (r *Release) Version() string {
	return strings.TrimPrefix(r.Tag, "v")
}

// Status is the outcome variant of a check.
type Status int

const (
	// StatusUpToDate covers "no newer release" and every failure path.
	StatusUpToDate Status = iota
	// StatusDisabled means checks are turned off in configuration.
	StatusDisabled
	// StatusAvailable means a newer release was found.
	StatusAvailable
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusAvailable:
		return "available"
	default:
		return "up-to-date"
	}
}

// MarshalText lets json and yaml encoders print the status name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result holds the outcome of one update check. It is built fresh for every
// check and never mutated afterwards.
type Result struct {
	Status         Status `json:"status" yaml:"status"`
	CurrentVersion string `json:"current_version,omitempty" yaml:"current_version,omitempty"`
	LatestVersion  string `json:"latest_version,omitempty" yaml:"latest_version,omitempty"`
	// LatestVersionCode is currentCode+1. It is an estimate and must not be
	// used for ordering.
	LatestVersionCode int    `json:"latest_version_code,omitempty" yaml:"latest_version_code,omitempty"`
	ReleaseNotes      string `json:"release_notes,omitempty" yaml:"release_notes,omitempty"`
	DownloadURL       string `json:"download_url,omitempty" yaml:"download_url,omitempty"` // release page
	AssetURL          string `json:"asset_url,omitempty" yaml:"asset_url,omitempty"`       // package file, or the page URL
}

// UpdateAvailable reports whether r is the Available variant.
func (r Result) UpdateAvailable() bool {
	return r.Status == StatusAvailable
}

// TargetURL is where a "download" action should lead.
func (r Result) TargetURL() string {
	if r.AssetURL != "" {
		return r.AssetURL
	}
	return r.DownloadURL
}
