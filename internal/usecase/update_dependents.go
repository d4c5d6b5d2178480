package usecase

import (
	"context"
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/service"
)

// UpdateDependentsUseCase propagates the bumped version into the files that
// mirror it: the cargo lockfile and the node binding packages.

type UpdateDependentsUseCase struct {
	CargoSvc       service.CargoService
	NodeSvc        service.NodeService
	NodeBindingDir string
}

// Execute runs the use case.
func (uc *UpdateDependentsUseCase) Execute(ctx context.Context, version *domain.Version) error {
	if err := uc.CargoSvc.UpdateWorkspace(ctx); err != nil {
		return fmt.Errorf("failed to refresh cargo lockfile: %w", err)
	}
	if err := uc.NodeSvc.SetVersion(ctx, uc.NodeBindingDir, version.String()); err != nil {
		return fmt.Errorf("failed to update node binding version: %w", err)
	}
	return nil
}
