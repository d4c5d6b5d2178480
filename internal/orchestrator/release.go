package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/releasecut/releasecut/internal/config"
	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/repository"
	"github.com/releasecut/releasecut/internal/service"
	"github.com/releasecut/releasecut/internal/usecase"
	"go.uber.org/zap"
)

// BumpConfig contains configuration for one release run. It is passed by
// value between steps; no run state lives outside it and the returned
// Release.
type BumpConfig struct {
	Component   domain.Component
	DryRun      bool // Stop after the changelog is regenerated
	SkipPublish bool // Skip the GitHub release (tag is still pushed)
	CIOutput    bool // Emit key=value lines for workflow consumption
}

// ReleaseOrchestrator sequences the release pipeline as a strict linear state
// machine. Transition failures halt the machine where it stands; completed
// steps are deliberately never rolled back so the operator can inspect the
// journal and resume manually.
type ReleaseOrchestrator struct {
	gitRepo     repository.GitRepository
	githubRepo  repository.GithubRepository
	fsRepo      repository.FileSystemRepository
	cliffSvc    service.CliffService
	cargoSvc    service.CargoService
	nodeSvc     service.NodeService
	journalRepo repository.JournalRepository
	cfg         *config.Config
	logger      *zap.Logger
	state       State
}

// NewReleaseOrchestrator creates a new release orchestrator.
func NewReleaseOrchestrator(
	gitRepo repository.GitRepository,
	githubRepo repository.GithubRepository,
	fsRepo repository.FileSystemRepository,
	cliffSvc service.CliffService,
	cargoSvc service.CargoService,
	nodeSvc service.NodeService,
	journalRepo repository.JournalRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *ReleaseOrchestrator {
	return &ReleaseOrchestrator{
		gitRepo:     gitRepo,
		githubRepo:  githubRepo,
		fsRepo:      fsRepo,
		cliffSvc:    cliffSvc,
		cargoSvc:    cargoSvc,
		nodeSvc:     nodeSvc,
		journalRepo: journalRepo,
		cfg:         cfg,
		logger:      logger,
		state:       StateIdle,
	}
}

// State returns the machine's current position.
func (o *ReleaseOrchestrator) State() State {
	return o.state
}

// Execute runs the complete release pipeline.
func (o *ReleaseOrchestrator) Execute(ctx context.Context, cfg BumpConfig) (*domain.Release, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()

	// One release pipeline per checkout at a time.
	unlock, err := o.journalRepo.LockRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize release run: %w", err)
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil {
			o.logger.Warn("failed to release run lock", zap.Error(unlockErr))
		}
	}()

	journal := domain.NewReleaseJournal(cfg.Component)
	release := &domain.Release{Component: cfg.Component}

	if err := o.runPipeline(ctx, cfg, journal, release); err != nil {
		return release, err
	}
	o.writeStepSummary(release)
	return release, nil
}

// runPipeline walks the transitions in order, stopping at the first failure.
func (o *ReleaseOrchestrator) runPipeline(
	ctx context.Context,
	cfg BumpConfig,
	journal *domain.ReleaseJournal,
	release *domain.Release,
) error {
	if err := o.transition(ctx, journal, StateVersionBumped, "patch manifest", func(ctx context.Context) error {
		return o.patchManifest(ctx, cfg, journal, release)
	}); err != nil {
		return err
	}

	if err := o.transition(ctx, journal, StateDependentFilesUpdated, "update dependent files",
		func(ctx context.Context) error {
			uc := &usecase.UpdateDependentsUseCase{
				CargoSvc:       o.cargoSvc,
				NodeSvc:        o.nodeSvc,
				NodeBindingDir: o.cfg.NodeBindingDir,
			}
			return uc.Execute(ctx, release.NewVersion)
		}); err != nil {
		return err
	}

	if err := o.transition(ctx, journal, StateChangelogRegenerated, "regenerate changelog",
		func(ctx context.Context) error {
			uc := &usecase.RegenerateChangelogUseCase{CliffSvc: o.cliffSvc}
			return uc.Execute(ctx, release.TagName)
		}); err != nil {
		return err
	}

	if cfg.DryRun {
		o.printStatus(cfg.CIOutput,
			fmt.Sprintf("Dry-run complete - release %s prepared locally (no commit/push/release).", release.TagName))
		return nil
	}

	if err := o.transition(ctx, journal, StateCommitted, "commit changes", func(ctx context.Context) error {
		return o.commitChanges(ctx, release)
	}); err != nil {
		return err
	}

	if err := o.transition(ctx, journal, StatePushed, "push commit", func(ctx context.Context) error {
		if err := o.gitRepo.PushHead(ctx); err != nil {
			// The one failure mode needing urgent attention: the local commit
			// exists but the remote never saw it.
			return fmt.Errorf("%w: %v", domain.ErrPushDiverged, err)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := o.transition(ctx, journal, StateTagged, "tag release", func(ctx context.Context) error {
		return o.tagRelease(ctx, release)
	}); err != nil {
		return err
	}

	if err := o.publishTransition(ctx, cfg, journal, release); err != nil {
		return err
	}

	o.state = StateDone
	journal.State = string(o.state)
	o.saveJournal(ctx, journal)
	o.printStatus(cfg.CIOutput, fmt.Sprintf("Release %s published", release.TagName))
	return nil
}

// transition runs one step, advancing the state only on success and recording
// the outcome either way.
func (o *ReleaseOrchestrator) transition(
	ctx context.Context,
	journal *domain.ReleaseJournal,
	to State,
	name string,
	fn func(context.Context) error,
) error {
	o.logger.Info("step started", zap.String("step", name), zap.String("state", string(o.state)))
	if err := fn(ctx); err != nil {
		journal.RecordStep(name, domain.StepStatusFailed, err)
		journal.State = string(o.state)
		o.saveJournal(ctx, journal)
		o.logger.Error("step failed", zap.String("step", name), zap.String("state", string(o.state)), zap.Error(err))
		return err
	}
	o.state = to
	journal.RecordStep(name, domain.StepStatusCompleted, nil)
	journal.State = string(o.state)
	o.saveJournal(ctx, journal)
	o.logger.Info("step completed", zap.String("step", name), zap.String("state", string(o.state)))
	return nil
}

// patchManifest performs the version bump and validates the result before
// any external tool runs.
func (o *ReleaseOrchestrator) patchManifest(
	ctx context.Context,
	cfg BumpConfig,
	journal *domain.ReleaseJournal,
	release *domain.Release,
) error {
	uc := &usecase.PatchManifestUseCase{Fs: o.fsRepo, ManifestPath: o.cfg.ManifestPath}
	result, err := uc.Execute(ctx, cfg.Component)
	if err != nil {
		return err
	}
	if err := ValidateVersion(result.NewVersion.String()); err != nil {
		return fmt.Errorf("invalid version: %w", err)
	}
	tag := result.NewVersion.TagName()
	if err := ValidateTagName(tag); err != nil {
		return fmt.Errorf("invalid tag name: %w", err)
	}
	release.OldVersion = result.OldVersion
	release.NewVersion = result.NewVersion
	release.TagName = tag
	journal.OldVersion = result.OldVersion.String()
	journal.NewVersion = result.NewVersion.String()
	o.printCIOutput(cfg.CIOutput, "old_version=%s\n", result.OldVersion)
	o.printCIOutput(cfg.CIOutput, "new_version=%s\n", result.NewVersion)
	o.printCIOutput(cfg.CIOutput, "tag=%s\n", tag)
	return nil
}

// commitChanges stages everything the earlier steps touched and commits.
func (o *ReleaseOrchestrator) commitChanges(ctx context.Context, release *domain.Release) error {
	if os.Getenv("CI") == "true" {
		if err := o.configureCIUser(ctx); err != nil {
			return err
		}
	}
	if err := o.gitRepo.StageAll(ctx); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	message := fmt.Sprintf("Bump version to %s", release.TagName)
	if err := o.gitRepo.Commit(ctx, message); err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}

// configureCIUser sets the git identity from the workflow actor.
func (o *ReleaseOrchestrator) configureCIUser(ctx context.Context) error {
	if err := ValidateEnvironmentVariables([]string{"GITHUB_ACTOR", "GITHUB_ACTOR_ID"}); err != nil {
		return fmt.Errorf("cannot configure CI git identity: %w", err)
	}
	actor := os.Getenv("GITHUB_ACTOR")
	email := fmt.Sprintf("%s+%s@users.noreply.github.com", os.Getenv("GITHUB_ACTOR_ID"), actor)
	if err := o.gitRepo.ConfigureUser(ctx, actor, email); err != nil {
		return fmt.Errorf("failed to configure git user: %w", err)
	}
	return nil
}

// tagRelease creates the annotated tag and pushes it. The tag push is what
// triggers the downstream package-publishing builds.
func (o *ReleaseOrchestrator) tagRelease(ctx context.Context, release *domain.Release) error {
	exists, err := o.gitRepo.TagExists(ctx, release.TagName)
	if err != nil {
		return fmt.Errorf("failed to check tag: %w", err)
	}
	if exists {
		return fmt.Errorf("tag %s already exists", release.TagName)
	}
	message := fmt.Sprintf("Release %s", release.TagName)
	if err := o.gitRepo.CreateTag(ctx, release.TagName, message); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	if err := o.gitRepo.PushTag(ctx, release.TagName); err != nil {
		return fmt.Errorf("failed to push tag: %w", err)
	}
	return nil
}

// publishTransition extracts the notes and publishes the GitHub release.
func (o *ReleaseOrchestrator) publishTransition(
	ctx context.Context,
	cfg BumpConfig,
	journal *domain.ReleaseJournal,
	release *domain.Release,
) error {
	if cfg.SkipPublish {
		o.state = StatePublished
		journal.RecordStep("publish release", domain.StepStatusSkipped, nil)
		journal.State = string(o.state)
		o.saveJournal(ctx, journal)
		o.printStatus(cfg.CIOutput, "Skipping GitHub release publication")
		return nil
	}
	return o.transition(ctx, journal, StatePublished, "publish release", func(ctx context.Context) error {
		extract := &usecase.ExtractNotesUseCase{Fs: o.fsRepo, ChangelogPath: o.cfg.ChangelogPath}
		note, err := extract.Execute(ctx, release.NewVersion)
		if err != nil {
			return err
		}
		if note.IsEmpty() {
			// Recoverable: the changelog was regenerated moments ago, so a
			// missing block means empty notes, not a failed release.
			o.logger.Warn("no notes found for tag, publishing with empty notes",
				zap.String("tag", release.TagName))
		}
		release.Note = note
		publish := &usecase.PublishReleaseUseCase{GithubRepo: o.githubRepo}
		return publish.Execute(ctx, release)
	})
}

// saveJournal persists the journal; failures are logged, never fatal.
func (o *ReleaseOrchestrator) saveJournal(ctx context.Context, journal *domain.ReleaseJournal) {
	if err := o.journalRepo.Save(ctx, journal); err != nil {
		o.logger.Warn("failed to save release journal", zap.Error(err))
	}
}

// writeStepSummary appends a human-readable result to the summary file when
// one is configured (GITHUB_STEP_SUMMARY on Actions).
func (o *ReleaseOrchestrator) writeStepSummary(release *domain.Release) {
	if o.cfg.StepSummaryPath == "" || release.NewVersion == nil {
		return
	}
	summary := fmt.Sprintf("### releasecut\n\n- component: %s\n- version: %s -> %s\n- tag: %s\n- state: %s\n",
		release.Component, release.OldVersion, release.NewVersion, release.TagName, o.state)
	f, err := o.fsRepo.OpenFile(o.cfg.StepSummaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermissionsReadWrite)
	if err != nil {
		o.logger.Warn("failed to open step summary", zap.Error(err))
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			o.logger.Warn("failed to close step summary", zap.Error(closeErr))
		}
	}()
	if _, err := f.WriteString(summary); err != nil {
		o.logger.Warn("failed to write step summary", zap.Error(err))
	}
}

// printCIOutput prints output in CI format if enabled
func (o *ReleaseOrchestrator) printCIOutput(ciOutput bool, format string, args ...any) {
	if ciOutput {
		fmt.Printf(format, args...)
	}
}

// printStatus prints status messages when not in CI mode
func (o *ReleaseOrchestrator) printStatus(ciOutput bool, message string) {
	if !ciOutput {
		fmt.Println(message)
	}
}
