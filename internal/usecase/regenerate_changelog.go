package usecase

import (
	"context"

	"github.com/releasecut/releasecut/internal/service"
)

// RegenerateChangelogUseCase rebuilds the changelog for the upcoming tag.

type RegenerateChangelogUseCase struct {
	CliffSvc service.CliffService
}

// Execute runs the use case.
func (uc *RegenerateChangelogUseCase) Execute(ctx context.Context, tag string) error {
	return uc.CliffSvc.RegenerateChangelog(ctx, tag)
}
