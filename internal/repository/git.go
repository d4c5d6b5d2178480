package repository

import "context"

// GitRepository defines the interface for Git operations.

type GitRepository interface {
	ConfigureUser(ctx context.Context, name, email string) error
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	PushHead(ctx context.Context) error
	TagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, tag string) error
	CurrentBranch(ctx context.Context) (string, error)
	HeadCommit(ctx context.Context) (string, error)
}
