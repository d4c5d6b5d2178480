package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
	"github.com/releasecut/releasecut/internal/config"
	"github.com/releasecut/releasecut/internal/domain"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(token, owner, repo string) (GithubRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// CreateRelease publishes a GitHub release for the given tag. The tag is
// expected to exist on the remote already; the title and body come from the
// changelog extraction and may be empty.
func (r *githubRepository) CreateRelease(
	ctx context.Context,
	tag string,
	note domain.ReleaseNote,
	prerelease bool,
) error {
	name := note.Title
	if name == "" {
		name = tag
	}
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(name),
		Body:       github.Ptr(note.Body),
		Prerelease: github.Ptr(prerelease),
	}
	_, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, release)
	if err != nil {
		return fmt.Errorf("failed to create release for %s: %w", tag, err)
	}
	return nil
}
