// Package detect decides whether a directory's content differs between the
// two reference points implied by the current trigger.
package detect

import (
	"context"

	"github.com/treeship/treeship/pkg/event"
	"github.com/treeship/treeship/pkg/git"
	"github.com/treeship/treeship/pkg/log"
	"github.com/treeship/treeship/pkg/pathutil"
)

// defaultRemote is the remote pull request base refs are fetched from.
const defaultRemote = "origin"

// Changed reports whether dir's content differs between the comparison base
// chosen for the trigger and HEAD. It mutates no branches, remotes or
// working-tree state; the only side effect is a best-effort, purely additive
// fetch of the pull request base ref.
//
// Base selection, in strict order:
//  1. Pull request with a base ref: origin/<base>, degrading to HEAD^ if the
//     fetch fails.
//  2. Tag push: no meaningful previous commit, so check for any path under
//     dir/ at HEAD instead of diffing.
//  3. Push with a resolvable parent: HEAD^.
//  4. First commit (no parent): same structural presence check as tags.
func Changed(ctx context.Context, client *git.Client, dir string, trigger event.Trigger) (bool, error) {
	dir = pathutil.CleanDir(dir)

	var base string
	switch {
	case trigger.Kind == event.TriggerPullRequest && trigger.BaseRef != "":
		base = defaultRemote + "/" + trigger.BaseRef
		if err := client.Fetch(ctx, defaultRemote, trigger.BaseRef); err != nil {
			log.Warn("failed to fetch pull request base, comparing against parent of HEAD instead",
				"base", trigger.BaseRef, "error", err)
			base = "HEAD^"
		}
	case trigger.Kind == event.TriggerTag:
		return presentAtHead(ctx, client, dir)
	case client.HasParent(ctx):
		base = "HEAD^"
	default:
		// First commit: nothing to diff against.
		return presentAtHead(ctx, client, dir)
	}

	// The degraded pull request base can still point at a parentless HEAD.
	if base == "HEAD^" && !client.HasParent(ctx) {
		return presentAtHead(ctx, client, dir)
	}

	names, err := client.DiffNames(ctx, base, "HEAD")
	if err != nil {
		return false, err
	}
	return pathutil.AnyUnder(names, dir), nil
}

// presentAtHead checks whether any path under dir/ exists in the tree at
// HEAD. Used where no previous commit exists to diff against.
func presentAtHead(ctx context.Context, client *git.Client, dir string) (bool, error) {
	paths, err := client.ListTree(ctx, "HEAD")
	if err != nil {
		return false, err
	}
	return pathutil.AnyUnder(paths, dir), nil
}
