// Package split extracts the commit history of a single directory into a
// process-owned temporary branch.
package split

import (
	"context"
	"fmt"
	"strings"

	"github.com/treeship/treeship/pkg/git"
	"github.com/treeship/treeship/pkg/log"
)

// branchPrefix marks every temporary branch this tool creates, so stale ones
// from crashed runs are recognizable.
const branchPrefix = "treeship-split--"

// pathFiller encodes path separators in the branch name. Encoding instead of
// stripping keeps two different directories from mapping to the same branch.
const pathFiller = "--"

// BranchName derives the deterministic temporary branch name for a
// directory.
func BranchName(dir string) string {
	dir = strings.Trim(dir, "/")
	return branchPrefix + strings.ReplaceAll(dir, "/", pathFiller)
}

// Extract produces a branch whose commits are the linearized history of dir,
// with paths rewritten relative to it. A stale branch of the same name left
// by a crashed prior run is force-deleted first; the extractor never appends
// to a pre-existing branch.
func Extract(ctx context.Context, client *git.Client, dir string) (string, error) {
	branch := BranchName(dir)

	exists, err := client.BranchExists(branch)
	if err != nil {
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	if exists {
		log.Warn("removing stale extraction branch", "branch", branch)
		if err := client.DeleteBranch(branch); err != nil {
			return "", fmt.Errorf("extraction failed: %w", err)
		}
	}

	log.Info("extracting directory history", "dir", dir, "branch", branch)
	if err := client.SubtreeSplit(ctx, strings.Trim(dir, "/"), branch); err != nil {
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	return branch, nil
}
