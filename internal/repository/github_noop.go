package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

// NewGithubNoopRepository returns a publisher that refuses every operation.
// Used when no token is configured so that tokenless runs fail at the publish
// step with a clear message instead of a transport error.
func NewGithubNoopRepository(owner, repo string) GithubRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) CreateRelease(
	_ context.Context,
	tag string,
	_ domain.ReleaseNote,
	_ bool,
) error {
	return fmt.Errorf("%w: unable to publish release %s for %s/%s (set GITHUB_TOKEN or pass --skip-publish)",
		ErrGithubTokenRequired, tag, r.owner, r.repo)
}
