package repository

import (
	"context"

	"github.com/releasecut/releasecut/internal/domain"
)

// GithubRepository defines the interface for GitHub API operations.

type GithubRepository interface {
	// CreateRelease publishes a release for an already-pushed tag.
	CreateRelease(ctx context.Context, tag string, note domain.ReleaseNote, prerelease bool) error
}
