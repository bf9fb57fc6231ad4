package walker

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/daedalus-tools/funchistory/history"
)

// ListCommits enumerates every commit reachable from HEAD of the
// repository discovered upward from the current working directory,
// newest-first, without touching any tree or blob.
func ListCommits() ([]history.CommitInfo, error) {
	repoPath, err := discoverRepoPath()
	if err != nil {
		return nil, &RepoError{Err: err}
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, &RepoError{Err: err}
	}
	head, err := repo.Head()
	if err != nil {
		return nil, &RepoError{Err: err}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, &RepoError{Err: err}
	}
	defer iter.Close()

	var out []history.CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		out = append(out, commitInfoOf(c))
		return nil
	})
	if err != nil {
		return nil, &RepoError{Err: err}
	}
	return out, nil
}
