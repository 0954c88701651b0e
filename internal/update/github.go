package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/leo/creators-guide/internal/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"

	acceptHeader     = "application/vnd.github.v3+json"
	defaultUserAgent = "creators-guide"

	connectTimeout = 10 * time.Second
	readTimeout    = 10 * time.Second

	// maxBodyBytes bounds the release document we are willing to read.
	maxBodyBytes = 4 << 20
)

var errNoRelease = errors.New("no release found")

// HTTPDoer interface for HTTP requests (allows mocking in tests).
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReleaseFetcher returns the latest release of owner/repo, or nil when there
// is none or it could not be fetched.
type ReleaseFetcher interface {
	FetchLatest(ctx context.Context, owner, repo string) *Release
}

// Client fetches release metadata from a GitHub-compatible API.
type Client struct {
	baseURL   string
	userAgent string
	http      HTTPDoer
	logger    *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPDoer replaces the HTTP transport.
func WithHTTPDoer(h HTTPDoer) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a release client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		http:      newHTTPClient(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClient applies a 10s connect timeout and a 10s read timeout.
// The overall client timeout covers a slow body after the headers arrived.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + readTimeout,
	}
}

// LatestReleaseURL returns the endpoint for the latest release of owner/repo.
func (c *Client) LatestReleaseURL(owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
}

// FetchLatest gets the latest release. Every failure (transport, status,
// decoding) is logged and reported as nil; it never returns an error.
func (c *Client) FetchLatest(ctx context.Context, owner, repo string) *Release {
	release, err := c.fetchLatest(ctx, owner, repo)
	if err != nil {
		c.logger.Warn().Err(err).Str("owner", owner).Str("repo", repo).Msg("latest release unavailable")
		return nil
	}
	c.logger.Debug().Str("tag", release.Tag).Int("assets", len(release.Assets)).Msg("fetched latest release")
	return release
}

func (c *Client) fetchLatest(ctx context.Context, owner, repo string) (*Release, error) {
	owner, repo = strings.TrimSpace(owner), strings.TrimSpace(repo)
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LatestReleaseURL(owner, repo), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNoRelease
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API error: %s", statusText(resp))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read release: %w", err)
	}
	return decodeRelease(body)
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// decodeRelease extracts the known fields one by one. Missing or wrongly
// typed optional fields fall back to zero values; only invalid JSON or a
// missing tag make the document unusable.
func decodeRelease(body []byte) (*Release, error) {
	if !jsoniter.Valid(body) {
		return nil, fmt.Errorf("failed to parse release: malformed JSON")
	}
	doc := jsoniter.Get(body)
	if doc.ValueType() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("failed to parse release: expected object, got %s", valueTypeName(doc.ValueType()))
	}

	tag := strings.TrimSpace(stringField(doc.Get("tag_name")))
	if tag == "" {
		return nil, fmt.Errorf("failed to parse release: missing tag_name")
	}

	release := &Release{
		Tag:     tag,
		Title:   stringField(doc.Get("name")),
		Notes:   stringField(doc.Get("body")),
		PageURL: stringField(doc.Get("html_url")),
		Assets:  []Asset{},
	}

	assets := doc.Get("assets")
	if assets.ValueType() == jsoniter.ArrayValue {
		for i := 0; i < assets.Size(); i++ {
			item := assets.Get(i)
			if item.ValueType() != jsoniter.ObjectValue {
				continue
			}
			release.Assets = append(release.Assets, Asset{
				Filename:    stringField(item.Get("name")),
				DownloadURL: stringField(item.Get("browser_download_url")),
				MediaType:   stringField(item.Get("content_type")),
				SizeBytes:   sizeField(item.Get("size")),
			})
		}
	}
	return release, nil
}

func stringField(v jsoniter.Any) string {
	if v.ValueType() != jsoniter.StringValue {
		return ""
	}
	return v.ToString()
}

func sizeField(v jsoniter.Any) int64 {
	if v.ValueType() != jsoniter.NumberValue {
		return 0
	}
	n := v.ToInt64()
	if n < 0 {
		return 0
	}
	return n
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.NilValue:
		return "null"
	default:
		return "invalid"
	}
}
