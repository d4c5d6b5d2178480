package usecase

import (
	"context"
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/repository"
)

// PublishReleaseUseCase publishes the GitHub release for an already-pushed
// tag. rc versions publish as prereleases.

type PublishReleaseUseCase struct {
	GithubRepo repository.GithubRepository
}

// Execute runs the use case.
func (uc *PublishReleaseUseCase) Execute(ctx context.Context, release *domain.Release) error {
	prerelease := release.NewVersion.IsPrerelease()
	if err := uc.GithubRepo.CreateRelease(ctx, release.TagName, release.Note, prerelease); err != nil {
		return fmt.Errorf("failed to publish release %s: %w", release.TagName, err)
	}
	return nil
}
