// Package selfupdate checks GitHub releases for a newer lectiz build and
// replaces the running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	binaryName = "lectiz"

	defaultOwner   = "abhisek"
	defaultRepo    = "lectiz"
	defaultBaseURL = "https://api.github.com"
)

// Checker resolves releases through the GitHub API and installs their
// assets. Asset URLs come from the release payload, so the download host
// never has to be configured separately.
type Checker struct {
	client   *http.Client
	owner    string
	repo     string
	baseURL  string
	platform platform
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the release API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func withPlatform(goos, goarch string) Option {
	return func(c *Checker) { c.platform = platform{goos: goos, goarch: goarch} }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the lectiz release repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: 10 * time.Second},
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultBaseURL,
		platform: currentPlatform(),
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

// Check asks the release API for the latest tag and compares it with
// input.Version using semantic version ordering. A current version that is
// not a semantic version (a local build) always reports an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.lookup(ctx, "")
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		UpdateAvailable: newer(rel.TagName, input.Version),
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}

// lookup fetches the release for tag, or the latest release when tag is
// empty, and rejects tags that are not semantic versions.
func (c *Checker) lookup(ctx context.Context, tag string) (*release, error) {
	endpoint := "latest"
	if tag != "" {
		endpoint = "tags/" + tag
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/%s", c.baseURL, c.owner, c.repo, endpoint)

	body, err := c.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("look up release: %w", err)
	}
	defer func() { _ = body.Close() }()

	var rel release
	if err := json.NewDecoder(body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if !semver.IsValid(canonical(rel.TagName)) {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}
	return &rel, nil
}

// fetch downloads a whole asset into memory.
func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()
	return io.ReadAll(body)
}

func (c *Checker) get(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

func newer(tag, current string) bool {
	cur := canonical(current)
	return !semver.IsValid(cur) || semver.Compare(canonical(tag), cur) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
