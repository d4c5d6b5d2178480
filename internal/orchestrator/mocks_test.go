package orchestrator

import (
	"context"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) ConfigureUser(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

func (m *mockGitRepository) StageAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockGitRepository) Commit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockGitRepository) PushHead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}

func (m *mockGitRepository) PushTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) CreateRelease(
	ctx context.Context,
	tag string,
	note domain.ReleaseNote,
	prerelease bool,
) error {
	args := m.Called(ctx, tag, note, prerelease)
	return args.Error(0)
}

type mockCliffService struct{ mock.Mock }

func (m *mockCliffService) RegenerateChangelog(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

type mockCargoService struct{ mock.Mock }

func (m *mockCargoService) UpdateWorkspace(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockNodeService struct{ mock.Mock }

func (m *mockNodeService) SetVersion(ctx context.Context, dir, version string) error {
	args := m.Called(ctx, dir, version)
	return args.Error(0)
}

type mockJournalRepository struct{ mock.Mock }

func (m *mockJournalRepository) Save(ctx context.Context, journal *domain.ReleaseJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *mockJournalRepository) Load(ctx context.Context, sessionID string) (*domain.ReleaseJournal, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReleaseJournal), args.Error(1)
}

func (m *mockJournalRepository) LoadLatest(ctx context.Context) (*domain.ReleaseJournal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReleaseJournal), args.Error(1)
}

func (m *mockJournalRepository) LockRun(ctx context.Context) (func() error, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func() error), args.Error(1)
}
