package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/releasecut/releasecut/internal/changelog"
	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/repository"
	"github.com/spf13/afero"
)

// ExtractNotesUseCase isolates one tag's notes from the changelog file.
// The changelog is regenerated externally just before this runs, so a tag
// with no block yields an empty note rather than an error.

type ExtractNotesUseCase struct {
	Fs            repository.FileSystemRepository
	ChangelogPath string
}

// Execute runs the use case. The lookup key is the bare version without the
// v prefix, matching the changelog's header format.
func (uc *ExtractNotesUseCase) Execute(_ context.Context, version *domain.Version) (domain.ReleaseNote, error) {
	data, err := afero.ReadFile(uc.Fs, uc.ChangelogPath)
	if err != nil {
		return domain.ReleaseNote{}, fmt.Errorf("failed to read changelog %s: %w", uc.ChangelogPath, err)
	}
	return changelog.Extract(bytes.NewReader(data), version.String())
}
