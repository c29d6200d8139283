package repository

import (
	"context"
	"time"
)

// GitLogRepository versions the catalog directory with git so every stored
// contract revision stays recoverable.

type GitLogRepository interface {
	// CommitAll stages everything under the catalog directory and commits it.
	// Returns the commit hash.
	CommitAll(ctx context.Context, message string) (string, error)
	// History returns up to limit commit summaries, newest first.
	History(ctx context.Context, limit int) ([]CommitSummary, error)
}

// CommitSummary describes one catalog commit.
type CommitSummary struct {
	Hash    string
	Message string
	When    time.Time
}
