// Package event captures the CI trigger context a run executes under.
//
// The environment variable names and ref shapes mirror the GitHub Actions
// convention (refs/tags/* for tags, refs/heads/* for branches, head and base
// refs supplied as flat variables on pull requests) so the tool is a drop-in
// inside workflows.
package event

import (
	"os"
	"strings"
)

const (
	tagRefPrefix    = "refs/tags/"
	branchRefPrefix = "refs/heads/"
)

// Context is a read-only snapshot of the ambient CI signals, taken once at
// process start. It is the single source of truth for what kind of trigger
// this run is.
type Context struct {
	// EventName is the event that triggered the workflow, e.g. "push" or
	// "pull_request". Empty outside CI.
	EventName string

	// Ref is the raw git ref, e.g. "refs/heads/main" or "refs/tags/v1.2.0".
	Ref string

	// HeadRef is the source branch for pull request events.
	HeadRef string

	// BaseRef is the target branch for pull request events.
	BaseRef string
}

// FromEnv snapshots the GitHub Actions environment.
func FromEnv() Context {
	return Context{
		EventName: os.Getenv("GITHUB_EVENT_NAME"),
		Ref:       os.Getenv("GITHUB_REF"),
		HeadRef:   os.Getenv("GITHUB_HEAD_REF"),
		BaseRef:   os.Getenv("GITHUB_BASE_REF"),
	}
}

// TriggerKind tags the classified trigger variant.
type TriggerKind int

const (
	// TriggerUnknown is anything that is not a recognizable push, tag or
	// pull request, including running outside CI entirely.
	TriggerUnknown TriggerKind = iota

	// TriggerPush is a branch push.
	TriggerPush

	// TriggerTag is a tag push.
	TriggerTag

	// TriggerPullRequest is a pull request event.
	TriggerPullRequest
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerPush:
		return "push"
	case TriggerTag:
		return "tag"
	case TriggerPullRequest:
		return "pull_request"
	default:
		return "unknown"
	}
}

// Trigger is the classified form of a Context, produced exactly once so no
// component re-parses ref strings ad hoc.
type Trigger struct {
	Kind TriggerKind

	// Name is the branch name for pushes and the tag name for tag pushes.
	Name string

	// HeadRef and BaseRef are set for pull requests only.
	HeadRef string
	BaseRef string
}

// Classify parses a Context into its trigger variant.
func Classify(ec Context) Trigger {
	if ec.EventName == "pull_request" {
		return Trigger{
			Kind:    TriggerPullRequest,
			HeadRef: ec.HeadRef,
			BaseRef: ec.BaseRef,
		}
	}
	if strings.HasPrefix(ec.Ref, tagRefPrefix) {
		return Trigger{
			Kind: TriggerTag,
			Name: strings.TrimPrefix(ec.Ref, tagRefPrefix),
		}
	}
	if strings.HasPrefix(ec.Ref, branchRefPrefix) {
		return Trigger{
			Kind: TriggerPush,
			Name: strings.TrimPrefix(ec.Ref, branchRefPrefix),
		}
	}
	return Trigger{Kind: TriggerUnknown}
}

// BranchName returns the target branch this trigger implies: the tag name
// for tag pushes, the head ref for pull requests, the branch name for
// pushes. Empty means the trigger alone cannot decide and the caller must
// fall back to the remote's default branch.
func (t Trigger) BranchName() string {
	switch t.Kind {
	case TriggerTag, TriggerPush:
		return t.Name
	case TriggerPullRequest:
		return t.HeadRef
	default:
		return ""
	}
}
