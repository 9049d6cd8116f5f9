// Package hub resolves repository metadata through the GitHub API. It backs
// the default-branch fallback for github.com remotes; non-GitHub remotes go
// through git ls-remote instead.
package hub

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// Client is a thin wrapper over the GitHub API client.
type Client struct {
	gh    *github.Client
	retry *RetryConfig
}

// NewClient creates a client, authenticated when a token is supplied.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		return &Client{gh: github.NewClient(nil), retry: DefaultRetryConfig()}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{gh: github.NewClient(oauth2.NewClient(ctx, ts)), retry: DefaultRetryConfig()}
}

// SetBaseURL points the client at a different API endpoint (for testing).
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	c.gh.BaseURL = parsed
	return nil
}

// DefaultBranch returns the repository's default branch. Rate-limited and
// transient server responses are retried with backoff; anything else fails on
// the first attempt.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retry.Delay(attempt - 1)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
		if err != nil {
			lastErr = err
			if resp != nil && c.retry.ShouldRetry(resp.StatusCode) {
				continue
			}
			if IsRetryableError(err) {
				continue
			}
			return "", fmt.Errorf("failed to look up %s/%s: %w", owner, repo, err)
		}
		if repository.GetDefaultBranch() == "" {
			return "", fmt.Errorf("repository %s/%s has no default branch", owner, repo)
		}
		return repository.GetDefaultBranch(), nil
	}
	return "", fmt.Errorf("failed to look up %s/%s: %w", owner, repo, lastErr)
}

// ParseRepo extracts the owner and repository name from a github.com locator
// in HTTPS, SSH or scp-like form.
func ParseRepo(raw string) (owner, repo string, err error) {
	path := raw

	switch {
	case strings.Contains(path, "github.com/"):
		path = path[strings.Index(path, "github.com/")+len("github.com/"):]
	case strings.Contains(path, "github.com:"):
		path = path[strings.Index(path, "github.com:")+len("github.com:"):]
	default:
		return "", "", fmt.Errorf("%q is not a github.com locator", raw)
	}

	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot extract owner/repo from %q", raw)
	}
	return parts[0], parts[1], nil
}
