// Package github provides a minimal client for the GitHub releases API
// with retry logic and per-client response caching.
package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrRateLimit indicates the GitHub API rate limit was exceeded
	ErrRateLimit = errors.New("GitHub API rate limit exceeded")
	// ErrNotFound indicates the requested release does not exist
	ErrNotFound = errors.New("release not found")
	// ErrAPIError indicates a general GitHub API error
	ErrAPIError = errors.New("GitHub API error")
)

// Client handles communication with the GitHub API. Responses are cached
// per URL for the lifetime of the client, so repeated lookups of the same
// release cost a single request.
type Client struct {
	BaseURL    string
	UserAgent  string
	Token      string // personal access token (optional, increases rate limit)
	HTTPClient *http.Client
	RetryCount int
	RetryDelay time.Duration

	// delayFunc allows tests to intercept inter-retry sleeps
	delayFunc func(time.Duration)
	cache     map[string][]byte
}

// Release is the subset of the GitHub release payload the toolkit uses.
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

// NewClient creates a GitHub API client with a short request timeout and a
// small fixed number of retries. The token is read from the GITHUB_TOKEN
// environment variable when present; its absence only means
// unauthenticated, rate-limited access.
func NewClient() *Client {
	return &Client{
		BaseURL:   "https://api.github.com",
		UserAgent: "relkit/1.0",
		Token:     os.Getenv("GITHUB_TOKEN"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		RetryCount: 3,
		RetryDelay: 1 * time.Second,
		delayFunc:  time.Sleep,
		cache:      make(map[string][]byte),
	}
}

// SetDelayFunc overrides the inter-retry sleep, for tests.
func (c *Client) SetDelayFunc(fn func(time.Duration)) {
	c.delayFunc = fn
}

// GetRelease fetches release metadata for a tag.
func (c *Client) GetRelease(owner, repo, tag string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.BaseURL, owner, repo, tag)

	body, err := c.getWithRetry(url)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to parse GitHub response: %w", err)
	}
	return &release, nil
}

// GetReleaseBodyLines fetches the body of a release split into lines. An
// existing release with an empty body yields zero lines and no error.
func (c *Client) GetReleaseBodyLines(owner, repo, tag string) ([]string, error) {
	release, err := c.GetRelease(owner, repo, tag)
	if err != nil {
		return nil, err
	}
	if release.Body == "" {
		return nil, nil
	}
	return splitLines(release.Body), nil
}

// getWithRetry performs a GET with the configured retry policy, consulting
// the response cache first. Only transport errors and retryable status
// codes (5xx, 429) are retried; the delay between attempts is fixed.
func (c *Client) getWithRetry(url string) ([]byte, error) {
	if cached, ok := c.cache[url]; ok {
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt < c.RetryCount; attempt++ {
		if attempt > 0 {
			c.sleep(c.RetryDelay)
		}

		body, retryable, err := c.get(url)
		if err == nil {
			c.cache[url] = body
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.RetryCount, lastErr)
}

// get performs a single GET request. retryable reports whether the failure
// is worth another attempt.
func (c *Client) get(url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		reset := resp.Header.Get("X-RateLimit-Reset")
		return nil, false, fmt.Errorf("%w: rate limit resets at %s", ErrRateLimit, reset)
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		data, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode, string(data))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return data, false, nil
}

func (c *Client) sleep(d time.Duration) {
	if c.delayFunc != nil {
		c.delayFunc(d)
		return
	}
	time.Sleep(d)
}

// GetRateLimitInfo returns the current core rate limit status.
func (c *Client) GetRateLimitInfo() (remaining int, resetTime time.Time, err error) {
	url := fmt.Sprintf("%s/rate_limit", c.BaseURL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, time.Time{}, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, time.Time{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, time.Time{}, err
	}

	var result struct {
		Resources struct {
			Core struct {
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, time.Time{}, err
	}

	return result.Resources.Core.Remaining, time.Unix(result.Resources.Core.Reset, 0), nil
}

// splitLines splits a release body on newlines, tolerating CRLF endings.
func splitLines(body string) []string {
	return strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
}
