package service

import "context"

// NodeService defines the interface for updating the node binding packages.

type NodeService interface {
	// SetVersion rewrites the package.json versions in the binding directory.
	SetVersion(ctx context.Context, dir, version string) error
}
