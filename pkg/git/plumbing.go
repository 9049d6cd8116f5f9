package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// Reference and remote bookkeeping goes through go-git rather than a
// subprocess: these operations only touch .git metadata and need no
// working-tree or transport machinery.

func (c *Client) openRepo() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", c.Dir, err)
	}
	return repo, nil
}

// BranchExists reports whether a local branch with the given short name
// exists.
func (c *Client) BranchExists(name string) (bool, error) {
	repo, err := c.openRepo()
	if err != nil {
		return false, err
	}

	_, err = repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read branch %s: %w", name, err)
	}
	return true, nil
}

// DeleteBranch removes a local branch unconditionally. Deleting a branch that
// does not exist is an error; use BranchExists first when absence is fine.
func (c *Client) DeleteBranch(name string) error {
	repo, err := c.openRepo()
	if err != nil {
		return err
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, true); err != nil {
		return fmt.Errorf("failed to read branch %s: %w", name, err)
	}
	if err := repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// RemoteExists reports whether a remote with the given name is configured.
func (c *Client) RemoteExists(name string) (bool, error) {
	repo, err := c.openRepo()
	if err != nil {
		return false, err
	}

	_, err = repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read remote %s: %w", name, err)
	}
	return true, nil
}

// AddRemote registers a remote under the given name.
func (c *Client) AddRemote(name, url string) error {
	repo, err := c.openRepo()
	if err != nil {
		return err
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote deletes a remote registration.
func (c *Client) RemoveRemote(name string) error {
	repo, err := c.openRepo()
	if err != nil {
		return err
	}

	if err := repo.DeleteRemote(name); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}
	return nil
}
