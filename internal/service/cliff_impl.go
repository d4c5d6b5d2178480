package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// cliffService is the implementation of the CliffService interface.
type cliffService struct {
	configPath string
	outputPath string
	// timeout for command execution
	timeout time.Duration
}

// NewCliffService creates a new CliffService. git-cliff reads GITHUB_TOKEN
// from the environment for REST API lookups; that is its concern, not ours.
func NewCliffService(configPath, outputPath string) CliffService {
	return &cliffService{
		configPath: configPath,
		outputPath: outputPath,
		timeout:    DefaultCliffTimeout,
	}
}

// sanitizeTag validates a git tag to prevent command injection.
func (s *cliffService) sanitizeTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	// Allow only valid git tag characters: alphanumeric, dots, hyphens,
	// underscores, slashes and the 'v' prefix for version tags
	validTag := regexp.MustCompile(`^[a-zA-Z0-9._/\-]+$`)
	if !validTag.MatchString(tag) {
		return fmt.Errorf("invalid tag format: %s", tag)
	}
	if strings.Contains(tag, "..") {
		return fmt.Errorf("invalid tag: contains directory traversal")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag too long: maximum 255 characters")
	}
	return nil
}

// RegenerateChangelog rebuilds the changelog from git history with the given
// tag as the newest release.
func (s *cliffService) RegenerateChangelog(ctx context.Context, tag string) error {
	if err := s.sanitizeTag(tag); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}
	args := []string{"--tag", tag, "--output", s.outputPath}
	if s.configPath != "" {
		args = append([]string{"--config", s.configPath}, args...)
	}
	return runCommand(ctx, s.timeout, "", "git-cliff", args...)
}
