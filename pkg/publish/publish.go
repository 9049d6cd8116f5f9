// Package publish pushes an extracted history branch to the target
// repository and tears down the temporary objects a run creates.
package publish

import (
	"context"
	"fmt"

	"github.com/treeship/treeship/pkg/git"
	"github.com/treeship/treeship/pkg/log"
)

// RemoteName is the fixed name the target repository is registered under for
// the duration of a run.
const RemoteName = "treeship-target"

// SetupRemote registers the normalized push URL under the fixed remote name,
// replacing any registration left behind by a crashed prior run.
func SetupRemote(ctx context.Context, client *git.Client, url string) (string, error) {
	exists, err := client.RemoteExists(RemoteName)
	if err != nil {
		return "", err
	}
	if exists {
		log.Warn("removing stale remote registration", "remote", RemoteName)
		if err := client.RemoveRemote(RemoteName); err != nil {
			return "", err
		}
	}

	if err := client.AddRemote(RemoteName, url); err != nil {
		return "", err
	}
	return RemoteName, nil
}

// Publish pushes tempBranch to targetBranch on the registered remote.
//
// The target branch is fetched first so the subsequent lease push has a
// last-observed tip to compare against; a branch that does not exist on the
// remote yet is not an error, it just means the push will create it. The
// push itself uses force-with-lease: it fails instead of clobbering if the
// remote tip moved past what this process observed, which protects against a
// concurrent run or a human push racing the automation. The window between
// fetch and push remains unguarded; isolated checkouts per run are the
// documented deployment model.
func Publish(ctx context.Context, client *git.Client, remote, tempBranch, targetBranch string) error {
	if err := client.Fetch(ctx, remote, targetBranch); err != nil {
		log.Debug("target branch not fetched, push will create it",
			"branch", targetBranch, "error", err)
	}

	err := client.Push(ctx, git.PushOptions{
		Remote:         remote,
		LocalRef:       tempBranch,
		RemoteBranch:   targetBranch,
		ForceWithLease: true,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", tempBranch, targetBranch, err)
	}
	return nil
}

// Cleanup removes the temporary branch and remote. Both removals are
// independently best-effort: a failure is logged and never promoted to a run
// failure, and failing one does not skip the other. Called exactly once per
// run, after extraction has begun, regardless of outcome.
func Cleanup(ctx context.Context, client *git.Client, tempBranch, remote string) {
	if tempBranch != "" {
		exists, err := client.BranchExists(tempBranch)
		if err != nil {
			log.Warn("failed to check temporary branch during cleanup", "branch", tempBranch, "error", err)
		} else if exists {
			if err := client.DeleteBranch(tempBranch); err != nil {
				log.Warn("failed to delete temporary branch", "branch", tempBranch, "error", err)
			}
		}
	}

	if remote != "" {
		exists, err := client.RemoteExists(remote)
		if err != nil {
			log.Warn("failed to check temporary remote during cleanup", "remote", remote, "error", err)
		} else if exists {
			if err := client.RemoveRemote(remote); err != nil {
				log.Warn("failed to remove temporary remote", "remote", remote, "error", err)
			}
		}
	}
}
