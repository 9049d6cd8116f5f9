// Package preflight verifies the environment before a run mutates anything:
// a usable git binary, a real working copy and an existing source directory.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/treeship/treeship/pkg/git"
	"github.com/treeship/treeship/pkg/log"
)

// CheckLevel represents the severity level of a preflight check result.
type CheckLevel int

const (
	// LevelError indicates a failure that prevents the run.
	LevelError CheckLevel = iota
	// LevelWarn indicates a condition worth surfacing that does not block.
	LevelWarn
	// LevelInfo indicates informational output.
	LevelInfo
)

// CheckResult is the outcome of a single preflight check.
type CheckResult struct {
	Name    string
	Level   CheckLevel
	Message string
	Error   error
}

// Check is a single preflight check.
type Check interface {
	Name() string
	Run(ctx context.Context) CheckResult
}

// Config configures which checks a Checker runs.
type Config struct {
	// Skip disables all checks.
	Skip bool

	// RepoDir is the monorepo working copy to verify.
	RepoDir string

	// LocalDir is the directory inside RepoDir that will be extracted.
	LocalDir string
}

// Checker runs a collection of preflight checks.
type Checker struct {
	checks  []Check
	skipped bool
}

// NewChecker builds a checker for the given configuration.
func NewChecker(cfg Config) *Checker {
	c := &Checker{skipped: cfg.Skip}

	c.checks = append(c.checks, &GitCheck{})
	if cfg.RepoDir != "" {
		c.checks = append(c.checks, &RepoCheck{Dir: cfg.RepoDir})
	}
	if cfg.LocalDir != "" {
		c.checks = append(c.checks, &DirCheck{RepoDir: cfg.RepoDir, LocalDir: cfg.LocalDir})
	}
	return c
}

// Run executes all registered checks and returns a combined error when any of
// them fails at error level.
func (c *Checker) Run(ctx context.Context) error {
	if c.skipped {
		log.Info("preflight checks skipped")
		return nil
	}

	var failures []string
	for _, check := range c.checks {
		result := check.Run(ctx)
		switch result.Level {
		case LevelError:
			log.Error("preflight check failed", "check", result.Name, "message", result.Message)
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Message))
		case LevelWarn:
			log.Warn("preflight check warning", "check", result.Name, "message", result.Message)
		case LevelInfo:
			log.Debug("preflight check passed", "check", result.Name, "message", result.Message)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("preflight checks failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

// GitCheck verifies that a git binary is installed and answers.
type GitCheck struct{}

func (c *GitCheck) Name() string { return "git" }

func (c *GitCheck) Run(ctx context.Context) CheckResult {
	if _, err := exec.LookPath("git"); err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: "git command not found in PATH",
			Error:   err,
		}
	}

	out, err := exec.CommandContext(ctx, "git", "--version").CombinedOutput()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelWarn,
			Message: "git is installed but not answering",
			Error:   err,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: strings.TrimSpace(string(out)),
	}
}

// RepoCheck verifies that Dir is inside a git working copy.
type RepoCheck struct {
	Dir string
}

func (c *RepoCheck) Name() string { return "repository" }

func (c *RepoCheck) Run(ctx context.Context) CheckResult {
	if !git.NewClient(c.Dir).IsRepo(ctx) {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("%s is not a git working copy", c.Dir),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: fmt.Sprintf("%s is a git working copy", c.Dir),
	}
}

// DirCheck verifies that the directory to extract exists inside the working
// copy.
type DirCheck struct {
	RepoDir  string
	LocalDir string
}

func (c *DirCheck) Name() string { return "directory" }

func (c *DirCheck) Run(ctx context.Context) CheckResult {
	info, err := os.Stat(filepath.Join(c.RepoDir, c.LocalDir))
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("directory %s does not exist", c.LocalDir),
			Error:   err,
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:    c.Name(),
			Level:   LevelError,
			Message: fmt.Sprintf("%s is not a directory", c.LocalDir),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Level:   LevelInfo,
		Message: fmt.Sprintf("directory %s exists", c.LocalDir),
	}
}
