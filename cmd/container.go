package cmd

import (
	"fmt"
	"os"

	"github.com/releasecut/releasecut/internal/config"
	"github.com/releasecut/releasecut/internal/orchestrator"
	"github.com/releasecut/releasecut/internal/repository"
	"github.com/releasecut/releasecut/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo      repository.FileSystemRepository
	gitRepo     repository.GitRepository
	ghRepo      repository.GithubRepository
	journalRepo repository.JournalRepository
	cliffSvc    service.CliffService
	cargoSvc    service.CargoService
	nodeSvc     service.NodeService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := repository.NewGitRepository()
	if err != nil {
		return nil, err
	}

	// Publishing needs a token; without one the noop implementation explains
	// how to proceed instead of failing on startup.
	var ghRepo repository.GithubRepository
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		ghRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	return &container{
		cfg:         cfg,
		logger:      logger,
		fsRepo:      fsRepo,
		gitRepo:     gitRepo,
		ghRepo:      ghRepo,
		journalRepo: repository.NewJSONJournalRepository(fsRepo, cfg.JournalDir),
		cliffSvc:    service.NewCliffService(cfg.CliffConfigPath, cfg.ChangelogPath),
		cargoSvc:    service.NewCargoService(),
		nodeSvc:     service.NewNodeService(),
	}, nil
}

// newLogger returns a JSON logger on CI runners and a console logger locally.
func newLogger() (*zap.Logger, error) {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newOrchestrator wires the release pipeline from the container's parts.
func (c *container) newOrchestrator() *orchestrator.ReleaseOrchestrator {
	return orchestrator.NewReleaseOrchestrator(
		c.gitRepo,
		c.ghRepo,
		c.fsRepo,
		c.cliffSvc,
		c.cargoSvc,
		c.nodeSvc,
		c.journalRepo,
		c.cfg,
		c.logger,
	)
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewBumpCmd(c))
	rootCmd.AddCommand(NewNotesCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
