package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// nodeService is the implementation of the NodeService interface.
type nodeService struct {
	// timeout for command execution
	timeout time.Duration
}

// NewNodeService creates a new NodeService.
func NewNodeService() NodeService {
	return &nodeService{
		timeout: DefaultNodeTimeout,
	}
}

// sanitizeVersion validates a bare (un-prefixed) version string.
func (s *nodeService) sanitizeVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	validVersion := regexp.MustCompile(`^\d+\.\d+\.\d+(-rc\d+)?$`)
	if !validVersion.MatchString(version) {
		return fmt.Errorf("invalid version format: %s", version)
	}
	return nil
}

// resolvePathWithSymlinks resolves a path and evaluates symlinks.
func (s *nodeService) resolvePathWithSymlinks(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	resolvedPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}
	return resolvedPath, nil
}

// sanitizePath validates the binding directory and confines it to the
// project tree to prevent path traversal.
func (s *nodeService) sanitizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	absPath, err := s.resolvePathWithSymlinks(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	cwd, err = filepath.EvalSymlinks(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to resolve current directory symlinks: %w", err)
	}
	if !strings.HasPrefix(absPath, cwd+string(os.PathSeparator)) && absPath != cwd {
		return "", fmt.Errorf("path traversal detected: path must be within project directory")
	}
	if _, err := os.Stat(filepath.Join(absPath, "package.json")); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("package.json not found in directory: %s", absPath)
		}
		return "", fmt.Errorf("failed to check package.json: %w", err)
	}
	return absPath, nil
}

// SetVersion bumps the binding package version via yarn and fans it out to
// the per-platform packages via napi.
func (s *nodeService) SetVersion(ctx context.Context, dir, version string) error {
	if err := s.sanitizeVersion(version); err != nil {
		return fmt.Errorf("invalid version: %w", err)
	}
	safeDir, err := s.sanitizePath(dir)
	if err != nil {
		return fmt.Errorf("invalid binding directory: %w", err)
	}
	if err := runCommand(ctx, s.timeout, safeDir,
		"yarn", "version", "--new-version", version, "--no-git-tag-version"); err != nil {
		return err
	}
	return runCommand(ctx, s.timeout, safeDir, "napi", "version")
}
