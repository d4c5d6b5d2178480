package service

import (
	"context"
	"time"
)

// cargoService is the implementation of the CargoService interface.
type cargoService struct {
	// timeout for command execution
	timeout time.Duration
}

// NewCargoService creates a new CargoService.
func NewCargoService() CargoService {
	return &cargoService{
		timeout: DefaultCargoTimeout,
	}
}

// UpdateWorkspace runs cargo update scoped to workspace members so the
// lockfile picks up the bumped manifest version.
func (s *cargoService) UpdateWorkspace(ctx context.Context) error {
	return runCommand(ctx, s.timeout, "", "cargo", "update", "--workspace")
}
