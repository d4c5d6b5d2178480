package orchestrator

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// versionRegex matches the versions this pipeline produces
	versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+(-rc\d+)?$`)
	// tagNameRegex matches valid git tag names for releases
	tagNameRegex = regexp.MustCompile(`^v[a-zA-Z0-9._\-]+$`)
)

// ValidateVersion validates a bare version string.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if !versionRegex.MatchString(version) {
		return fmt.Errorf("invalid version format: %s (expected: 1.2.3 or 1.2.3-rc1)", version)
	}
	return nil
}

// ValidateTagName validates a release tag name.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag name too long: %d characters (max: 255)", len(tag))
	}
	if strings.Contains(tag, "..") {
		return fmt.Errorf("tag name cannot contain consecutive dots: %s", tag)
	}
	if !tagNameRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag name format: %s", tag)
	}
	return nil
}

// ValidateEnvironmentVariables checks for required environment variables.
func ValidateEnvironmentVariables(requiredVars []string) error {
	var missing []string
	for _, v := range requiredVars {
		if value := os.Getenv(v); value == "" {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
