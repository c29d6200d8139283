package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type gitLogRepository struct {
	dir string
}

// NewGitLogRepository creates a GitLogRepository rooted at dir, initializing
// a git repository there if none exists.
func NewGitLogRepository(dir string) (GitLogRepository, error) {
	if _, err := git.PlainOpen(dir); err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("failed to open catalog repository: %w", err)
		}
		if _, err := git.PlainInit(dir, false); err != nil {
			return nil, fmt.Errorf("failed to initialize catalog repository: %w", err)
		}
	}
	return &gitLogRepository{dir: dir}, nil
}

func (r *gitLogRepository) CommitAll(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return "", fmt.Errorf("failed to open catalog repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.AddGlob("."); err != nil {
		return "", fmt.Errorf("failed to stage catalog changes: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "dcx",
			Email: "dcx@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit catalog changes: %w", err)
	}
	return hash.String(), nil
}

func (r *gitLogRepository) History(ctx context.Context, limit int) ([]CommitSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		// An empty repository has no history yet.
		return nil, nil
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog history: %w", err)
	}
	defer iter.Close()
	var summaries []CommitSummary
	for {
		if limit > 0 && len(summaries) >= limit {
			break
		}
		commit, err := iter.Next()
		if err != nil {
			break
		}
		summaries = append(summaries, CommitSummary{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
			When:    commit.Committer.When,
		})
	}
	return summaries, nil
}
