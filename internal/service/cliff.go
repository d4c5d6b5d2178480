package service

import "context"

// CliffService defines the interface for interacting with git-cliff.

type CliffService interface {
	// RegenerateChangelog rewrites the changelog file for the given target tag.
	RegenerateChangelog(ctx context.Context, tag string) error
}
