// Package git provides the git layer used by detection, extraction and
// publishing. It wraps the system git binary for history and transport
// operations and uses go-git for reference/remote plumbing that does not need
// a subprocess.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/treeship/treeship/pkg/redact"
)

// Client executes git operations against a single working copy.
type Client struct {
	// Dir is the path to the git working copy.
	Dir string
}

// NewClient creates a client for the repository at dir.
func NewClient(dir string) *Client {
	return &Client{Dir: dir}
}

// ExecCommand runs a git subcommand in the client's directory and returns its
// trimmed combined output. On failure the output is folded into the error so
// callers can surface the git diagnostic directly; command line and output are
// redacted first since git echoes credentialed URLs back in its messages.
func (c *Client) ExecCommand(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Dir

	output, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(output))
	if err != nil {
		cmdline := redact.String("git " + strings.Join(args, " "))
		if text != "" {
			return text, fmt.Errorf("%s: %w: %s", cmdline, err, redact.String(text))
		}
		return text, fmt.Errorf("%s: %w", cmdline, err)
	}
	return text, nil
}

// IsRepo reports whether the directory is inside a git working copy.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, err := c.ExecCommand(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// HeadSHA returns the SHA of HEAD.
func (c *Client) HeadSHA(ctx context.Context) (string, error) {
	return c.ExecCommand(ctx, "rev-parse", "HEAD")
}

// RevParse resolves an arbitrary revision to a SHA.
func (c *Client) RevParse(ctx context.Context, rev string) (string, error) {
	return c.ExecCommand(ctx, "rev-parse", "--verify", rev)
}

// HasParent reports whether HEAD has a resolvable first parent. The first
// commit of a repository has none.
func (c *Client) HasParent(ctx context.Context) bool {
	_, err := c.ExecCommand(ctx, "rev-parse", "--verify", "--quiet", "HEAD^")
	return err == nil
}

// DiffNames returns the paths that differ between two revisions.
func (c *Client) DiffNames(ctx context.Context, base, head string) ([]string, error) {
	output, err := c.ExecCommand(ctx, "diff", "--name-only", base, head)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// ListTree returns every path present in the tree of the given revision.
func (c *Client) ListTree(ctx context.Context, rev string) ([]string, error) {
	output, err := c.ExecCommand(ctx, "ls-tree", "-r", "--name-only", rev)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// Fetch fetches a single ref from a remote. Used to populate tracking refs
// before diffing or pushing; callers decide whether failure is fatal.
func (c *Client) Fetch(ctx context.Context, remote, ref string) error {
	_, err := c.ExecCommand(ctx, "fetch", remote, ref)
	return err
}

// PushOptions describes a single push of a local ref to a remote branch.
type PushOptions struct {
	// Remote is the remote name or URL to push to.
	Remote string

	// LocalRef is the local branch or SHA being pushed.
	LocalRef string

	// RemoteBranch is the short branch name on the remote side.
	RemoteBranch string

	// ForceWithLease overwrites the remote branch only if its tip still
	// matches the locally tracked value, failing instead of clobbering a
	// concurrent update.
	ForceWithLease bool
}

// Push pushes LocalRef to RemoteBranch on the remote.
func (c *Client) Push(ctx context.Context, opts PushOptions) error {
	args := []string{"push"}
	if opts.ForceWithLease {
		args = append(args, "--force-with-lease=refs/heads/"+opts.RemoteBranch)
	}
	args = append(args, opts.Remote, opts.LocalRef+":refs/heads/"+opts.RemoteBranch)

	_, err := c.ExecCommand(ctx, args...)
	return err
}

// SubtreeSplit extracts the commit history touching prefix into a new branch,
// with paths rewritten relative to the prefix. This is the most expensive
// operation in the system; cost scales with the number of commits touching
// the prefix.
func (c *Client) SubtreeSplit(ctx context.Context, prefix, branch string) error {
	_, err := c.ExecCommand(ctx, "subtree", "split", "--prefix="+prefix, "-b", branch)
	return err
}

// ConfigGet reads a repository-scoped git config value. Returns an error if
// the key is unset.
func (c *Client) ConfigGet(ctx context.Context, key string) (string, error) {
	return c.ExecCommand(ctx, "config", "--get", key)
}

// SetConfig writes a repository-scoped git config value.
func (c *Client) SetConfig(ctx context.Context, key, value string) error {
	_, err := c.ExecCommand(ctx, "config", key, value)
	return err
}

// DefaultRemoteBranch asks a remote which branch its symbolic HEAD points to.
// The URL should already carry credentials if the remote needs them.
func (c *Client) DefaultRemoteBranch(ctx context.Context, url string) (string, error) {
	output, err := c.ExecCommand(ctx, "ls-remote", "--symref", url, "HEAD")
	if err != nil {
		return "", err
	}

	// First line looks like: "ref: refs/heads/main\tHEAD".
	for _, line := range splitLines(output) {
		if !strings.HasPrefix(line, "ref:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.HasPrefix(fields[1], "refs/heads/") {
			return strings.TrimPrefix(fields[1], "refs/heads/"), nil
		}
	}
	return "", fmt.Errorf("remote %s did not advertise a symbolic HEAD", redact.String(url))
}

func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
