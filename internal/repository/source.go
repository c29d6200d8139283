package repository

import "context"

// SourceRepository reads SQL sources from local paths or http(s) URLs.

type SourceRepository interface {
	Read(ctx context.Context, source string) (string, error)
}
