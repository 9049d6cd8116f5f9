package preflight

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v: %s", err, out)
	}
	return dir
}

func TestGitCheck(t *testing.T) {
	result := (&GitCheck{}).Run(context.Background())
	if result.Level != LevelInfo {
		t.Fatalf("expected git to be available, got level %d: %s", result.Level, result.Message)
	}
	if !strings.Contains(result.Message, "git version") {
		t.Errorf("expected version string, got %q", result.Message)
	}
}

func TestRepoCheck(t *testing.T) {
	repo := setupRepo(t)

	result := (&RepoCheck{Dir: repo}).Run(context.Background())
	if result.Level != LevelInfo {
		t.Errorf("expected working copy to pass, got level %d: %s", result.Level, result.Message)
	}

	result = (&RepoCheck{Dir: t.TempDir()}).Run(context.Background())
	if result.Level != LevelError {
		t.Errorf("expected plain directory to fail, got level %d: %s", result.Level, result.Message)
	}
}

func TestDirCheck(t *testing.T) {
	repo := setupRepo(t)
	if err := os.MkdirAll(filepath.Join(repo, "packages", "app"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		localDir string
		want     CheckLevel
	}{
		{"existing directory", "packages/app", LevelInfo},
		{"missing directory", "packages/missing", LevelError},
		{"plain file", "notes.txt", LevelError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := (&DirCheck{RepoDir: repo, LocalDir: tc.localDir}).Run(context.Background())
			if result.Level != tc.want {
				t.Errorf("got level %d (%s), want %d", result.Level, result.Message, tc.want)
			}
		})
	}
}

func TestChecker_AggregatesFailures(t *testing.T) {
	repo := setupRepo(t)

	checker := NewChecker(Config{RepoDir: repo, LocalDir: "does/not/exist"})
	err := checker.Run(context.Background())
	if err == nil {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(err.Error(), "does/not/exist") {
		t.Errorf("expected failing directory in error, got %v", err)
	}
}

func TestChecker_Skip(t *testing.T) {
	checker := NewChecker(Config{Skip: true, RepoDir: t.TempDir(), LocalDir: "missing"})
	if err := checker.Run(context.Background()); err != nil {
		t.Errorf("skipped checker should not fail: %v", err)
	}
}

func TestChecker_PassingRun(t *testing.T) {
	repo := setupRepo(t)
	if err := os.MkdirAll(filepath.Join(repo, "svc"), 0755); err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(Config{RepoDir: repo, LocalDir: "svc"})
	if err := checker.Run(context.Background()); err != nil {
		t.Errorf("expected checks to pass: %v", err)
	}
}
