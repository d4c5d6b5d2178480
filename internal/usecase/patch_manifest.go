package usecase

import (
	"context"
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/manifest"
	"github.com/releasecut/releasecut/internal/repository"
	"github.com/spf13/afero"
)

// ManifestFilePermissions is the mode for the rewritten manifest.
const ManifestFilePermissions = 0644

// PatchManifestUseCase bumps the managed version inside the build manifest.
// The patch itself is a pure text transform; reading and writing the backing
// file happens here.

type PatchManifestUseCase struct {
	Fs           repository.FileSystemRepository
	ManifestPath string
}

// Execute runs the use case.
func (uc *PatchManifestUseCase) Execute(_ context.Context, component domain.Component) (*manifest.Result, error) {
	data, err := afero.ReadFile(uc.Fs, uc.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", uc.ManifestPath, err)
	}
	result, err := manifest.Patch(string(data), component)
	if err != nil {
		return nil, fmt.Errorf("failed to patch manifest %s: %w", uc.ManifestPath, err)
	}
	if err := afero.WriteFile(uc.Fs, uc.ManifestPath, []byte(result.Document), ManifestFilePermissions); err != nil {
		return nil, fmt.Errorf("failed to write manifest %s: %w", uc.ManifestPath, err)
	}
	return result, nil
}
