package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournalRepo(t *testing.T) *JSONJournalRepository {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "journal")
	return NewJSONJournalRepository(afero.NewOsFs(), dir)
}

func sampleJournal() *domain.ReleaseJournal {
	journal := domain.NewReleaseJournal(domain.ComponentPatch)
	journal.OldVersion = "1.2.3"
	journal.NewVersion = "1.2.4"
	journal.State = "version_bumped"
	journal.RecordStep("patch manifest", domain.StepStatusCompleted, nil)
	return journal
}

func TestJSONJournalRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	t.Run("Should round-trip a journal by session id", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		journal := sampleJournal()
		require.NoError(t, repo.Save(ctx, journal))
		loaded, err := repo.Load(ctx, journal.SessionID)
		require.NoError(t, err)
		assert.Equal(t, journal.SessionID, loaded.SessionID)
		assert.Equal(t, "1.2.3", loaded.OldVersion)
		assert.Equal(t, "1.2.4", loaded.NewVersion)
		assert.Equal(t, "version_bumped", loaded.State)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, "patch manifest", loaded.Steps[0].Name)
		assert.Equal(t, domain.StepStatusCompleted, loaded.Steps[0].Status)
	})
	t.Run("Should resolve the most recent journal", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		first := sampleJournal()
		require.NoError(t, repo.Save(ctx, first))
		second := sampleJournal()
		second.NewVersion = "1.2.5"
		require.NoError(t, repo.Save(ctx, second))
		latest, err := repo.LoadLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.SessionID, latest.SessionID)
		assert.Equal(t, "1.2.5", latest.NewVersion)
	})
	t.Run("Should fail on unknown session ids", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		require.NoError(t, repo.Save(ctx, sampleJournal()))
		_, err := repo.Load(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorContains(t, err, "journal not found")
	})
	t.Run("Should detect tampered journal files", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		journal := sampleJournal()
		require.NoError(t, repo.Save(ctx, journal))
		filename := repo.journalFilename(journal.SessionID)
		data, err := afero.ReadFile(repo.fs, filename)
		require.NoError(t, err)
		tampered := strings.Replace(string(data), "1.2.4", "9.9.9", 1)
		require.NoError(t, afero.WriteFile(repo.fs, filename, []byte(tampered), JournalFilePermissions))
		_, err = repo.Load(ctx, journal.SessionID)
		assert.ErrorContains(t, err, "checksum mismatch")
	})
	t.Run("Should report when no journal exists yet", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		_, err := repo.LoadLatest(ctx)
		assert.ErrorContains(t, err, "no journal found")
	})
}

func TestJSONJournalRepository_LockRun(t *testing.T) {
	ctx := context.Background()
	t.Run("Should allow reacquiring the run lock after release", func(t *testing.T) {
		repo := newTestJournalRepo(t)
		unlock, err := repo.LockRun(ctx)
		require.NoError(t, err)
		require.NoError(t, unlock())
		unlock, err = repo.LockRun(ctx)
		require.NoError(t, err)
		require.NoError(t, unlock())
	})
}
