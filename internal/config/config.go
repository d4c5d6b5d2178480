package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	GithubToken     string `mapstructure:"github_token"`
	GithubOwner     string `mapstructure:"github_owner"`
	GithubRepo      string `mapstructure:"github_repo"`
	ManifestPath    string `mapstructure:"manifest_path"`
	ChangelogPath   string `mapstructure:"changelog_path"`
	CliffConfigPath string `mapstructure:"cliff_config_path"`
	NodeBindingDir  string `mapstructure:"node_binding_dir"`
	StepSummaryPath string `mapstructure:"step_summary_path"`
	JournalDir      string `mapstructure:"journal_dir"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ManifestPath:    "Cargo.toml",
		ChangelogPath:   "CHANGELOG.md",
		CliffConfigPath: ".config/cliff.toml",
		NodeBindingDir:  "bindings/node",
		JournalDir:      ".releasecut",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	// Owner/repo are optional until a GitHub operation needs them
	if c.GithubOwner != "" || c.GithubRepo != "" {
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	for name, path := range map[string]string{
		"manifest_path":     c.ManifestPath,
		"changelog_path":    c.ChangelogPath,
		"cliff_config_path": c.CliffConfigPath,
		"node_binding_dir":  c.NodeBindingDir,
		"journal_dir":       c.JournalDir,
	} {
		if path == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if strings.Contains(path, "..") {
			return fmt.Errorf("%s contains invalid path traversal", name)
		}
	}
	return nil
}

// ValidateForGitHubOperations validates that GitHub settings are present for
// operations that require them
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required for GitHub operations")
	}
	if c.GithubOwner == "" || c.GithubRepo == "" {
		return fmt.Errorf("github_owner and github_repo are required for GitHub operations")
	}
	return c.Validate()
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	// Validate token format patterns
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	// Load a local .env when present; CI injects env vars directly
	_ = godotenv.Load()
	viper.SetConfigName(".releasecut")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("RELEASECUT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token":      {"GITHUB_TOKEN", "RELEASECUT_GITHUB_TOKEN"},
		"github_owner":      {"GITHUB_REPOSITORY_OWNER", "RELEASECUT_GITHUB_OWNER"},
		"github_repo":       {"RELEASECUT_GITHUB_REPO"},
		"manifest_path":     {"RELEASECUT_MANIFEST_PATH"},
		"changelog_path":    {"RELEASECUT_CHANGELOG_PATH"},
		"cliff_config_path": {"RELEASECUT_CLIFF_CONFIG_PATH"},
		"node_binding_dir":  {"RELEASECUT_NODE_BINDING_DIR"},
		"step_summary_path": {"GITHUB_STEP_SUMMARY", "RELEASECUT_STEP_SUMMARY_PATH"},
		"journal_dir":       {"RELEASECUT_JOURNAL_DIR"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("manifest_path", defaults.ManifestPath)
	viper.SetDefault("changelog_path", defaults.ChangelogPath)
	viper.SetDefault("cliff_config_path", defaults.CliffConfigPath)
	viper.SetDefault("node_binding_dir", defaults.NodeBindingDir)
	viper.SetDefault("journal_dir", defaults.JournalDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills owner/repo from the Actions environment
// slug or, failing that, from the origin remote of the enclosing checkout.
// Leaving both unset is fine for runs that never touch the GitHub API.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	if owner, repo, ok := strings.Cut(os.Getenv("GITHUB_REPOSITORY"), "/"); ok && owner != "" && repo != "" {
		if cfg.GithubOwner == "" {
			cfg.GithubOwner = owner
		}
		if cfg.GithubRepo == "" {
			cfg.GithubRepo = repo
		}
		return nil
	}
	checkout, err := git.PlainOpen(".")
	if err != nil {
		return nil
	}
	remote, err := checkout.Remote("origin")
	if err != nil {
		return nil
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil
	}
	owner, repo, err := parseGitRemoteURL(urls[0])
	if err != nil {
		return err
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = repo
	}
	return nil
}

// parseGitRemoteURL extracts owner and repository from the common remote URL
// shapes (https, ssh scp-like, plain paths).
func parseGitRemoteURL(remoteURL string) (string, string, error) {
	cleaned := strings.TrimSuffix(remoteURL, ".git")
	if idx := strings.Index(cleaned, "://"); idx >= 0 {
		cleaned = cleaned[idx+3:]
	} else if idx := strings.LastIndex(cleaned, ":"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	cleaned = strings.Trim(filepath.ToSlash(cleaned), "/")
	parts := strings.Split(cleaned, "/")
	if len(parts) < 2 || parts[len(parts)-1] == "" || parts[len(parts)-2] == "" {
		return "", "", fmt.Errorf("cannot determine owner and repository from remote url: %s", remoteURL)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
