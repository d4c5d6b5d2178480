package service

import "context"

// CargoService defines the interface for interacting with cargo.

type CargoService interface {
	// UpdateWorkspace refreshes the lockfile after the manifest version changed.
	UpdateWorkspace(ctx context.Context) error
}
