// Package sync orchestrates a full run: decide whether the directory
// changed, extract its history, publish it to the target repository and tear
// down everything the run created.
package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/treeship/treeship/pkg/detect"
	"github.com/treeship/treeship/pkg/event"
	"github.com/treeship/treeship/pkg/git"
	"github.com/treeship/treeship/pkg/giturl"
	"github.com/treeship/treeship/pkg/hub"
	"github.com/treeship/treeship/pkg/log"
	"github.com/treeship/treeship/pkg/preflight"
	"github.com/treeship/treeship/pkg/project"
	"github.com/treeship/treeship/pkg/publish"
	"github.com/treeship/treeship/pkg/redact"
	"github.com/treeship/treeship/pkg/split"
)

// Failure taxonomy. Validation and branch resolution abort before any
// mutating operation; extraction and publish abort after, with cleanup
// guaranteed in between.
var (
	ErrValidation       = errors.New("validation failed")
	ErrBranchResolution = errors.New("could not determine target branch")
	ErrExtraction       = errors.New("history extraction failed")
	ErrPublish          = errors.New("publish failed")
)

// Options is the validated configuration for one run. Immutable once built.
type Options struct {
	// RepoDir is the monorepo working copy. Defaults to the current
	// directory.
	RepoDir string

	// LocalDir is the directory inside the monorepo to publish, relative
	// to RepoDir.
	LocalDir string

	// Remote is the target repository locator.
	Remote string

	// Branch optionally overrides target branch resolution.
	Branch string

	// Token is an optional credential injected into HTTPS remotes.
	Token string

	// Author is an optional "Name <email>" commit identity override.
	Author string
}

// Result describes one of the three terminal states: skipped (no change, or
// failure before any mutation), pushed, or neither (failure after mutation
// began).
type Result struct {
	Pushed  bool
	Skipped bool

	// Branch is the resolved target branch, when resolution got that far.
	Branch string
}

// Run executes the whole workflow once. It is stateless between invocations
// and safe to re-run: temporary branches and remotes are replaced on entry
// and removed on exit, and the push never clobbers a remote tip it has not
// observed.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.RepoDir == "" {
		opts.RepoDir = "."
	}

	if err := validate(opts); err != nil {
		return Result{Skipped: true}, err
	}
	if opts.Token != "" {
		// Keep the credential out of every log line and error from here on.
		redact.Add(opts.Token)
	}

	checker := preflight.NewChecker(preflight.Config{RepoDir: opts.RepoDir, LocalDir: opts.LocalDir})
	if err := checker.Run(ctx); err != nil {
		return Result{Skipped: true}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	cfg, err := project.Load(opts.RepoDir)
	if err != nil {
		return Result{Skipped: true}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	client := git.NewClient(opts.RepoDir)

	ec := event.FromEnv()
	trigger := event.Classify(ec)
	log.Debug("classified trigger", "kind", trigger.Kind.String(), "ref", ec.Ref)

	pushURL := giturl.Normalize(opts.Remote, opts.Token)

	target, err := resolveBranch(ctx, client, opts, cfg, trigger, pushURL)
	if err != nil {
		return Result{Skipped: true}, err
	}
	log.Info("resolved target branch", "branch", target)

	changed, err := detect.Changed(ctx, client, opts.LocalDir, trigger)
	if err != nil {
		return Result{Skipped: true}, fmt.Errorf("change detection failed: %w", err)
	}
	if !changed {
		log.Info("no changes detected, nothing to publish", "dir", opts.LocalDir)
		return Result{Skipped: true, Branch: target}, nil
	}
	log.Info("changes detected", "dir", opts.LocalDir)

	authorInput := opts.Author
	if authorInput == "" {
		authorInput = cfg.Author
	}
	author := git.ResolveAuthor(ctx, authorInput, client)
	if err := client.SetAuthor(ctx, author); err != nil {
		return Result{Branch: target}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	log.Debug("configured commit identity", "author", author.String())

	// From here on temporary objects exist; teardown must happen on every
	// exit path, including failures below.
	tempBranch := split.BranchName(opts.LocalDir)
	defer publish.Cleanup(ctx, client, tempBranch, publish.RemoteName)

	if _, err := split.Extract(ctx, client, opts.LocalDir); err != nil {
		return Result{Branch: target}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	remote, err := publish.SetupRemote(ctx, client, pushURL)
	if err != nil {
		return Result{Branch: target}, fmt.Errorf("%w: %w", ErrPublish, err)
	}

	if err := publish.Publish(ctx, client, remote, tempBranch, target); err != nil {
		return Result{Branch: target}, fmt.Errorf("%w: %w", ErrPublish, err)
	}

	log.Info("published directory history", "dir", opts.LocalDir, "branch", target)
	return Result{Pushed: true, Branch: target}, nil
}

func validate(opts Options) error {
	if opts.LocalDir == "" {
		return fmt.Errorf("%w: local directory is required", ErrValidation)
	}
	if opts.Remote == "" {
		return fmt.Errorf("%w: remote repository is required", ErrValidation)
	}
	return nil
}

// resolveBranch picks the target branch: explicit flag, project config
// default, trigger-implied name, then the remote's own default branch. The
// remote query prefers the GitHub API for github.com remotes and falls back
// to a symbolic-ref inspection over git.
func resolveBranch(ctx context.Context, client *git.Client, opts Options, cfg project.Config, trigger event.Trigger, pushURL string) (string, error) {
	if opts.Branch != "" {
		return opts.Branch, nil
	}
	if cfg.Branch != "" {
		return cfg.Branch, nil
	}
	if name := trigger.BranchName(); name != "" {
		return name, nil
	}

	if giturl.IsGitHub(opts.Remote) && opts.Token != "" {
		if owner, repo, err := hub.ParseRepo(opts.Remote); err == nil {
			branch, err := hub.NewClient(ctx, opts.Token).DefaultBranch(ctx, owner, repo)
			if err == nil {
				return branch, nil
			}
			log.Warn("GitHub API default branch lookup failed, falling back to ls-remote", "error", err)
		}
	}

	branch, err := client.DefaultRemoteBranch(ctx, pushURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBranchResolution, err)
	}
	return branch, nil
}
