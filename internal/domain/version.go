package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Component identifies one numeric field of a version, ordered by priority.
type Component int

const (
	ComponentMajor Component = iota
	ComponentMinor
	ComponentPatch
	ComponentRC
)

// ComponentNames lists the accepted bump targets in priority order.
var ComponentNames = []string{"major", "minor", "patch", "rc"}

// ParseComponent converts a CLI argument into a Component.
func ParseComponent(s string) (Component, error) {
	for i, name := range ComponentNames {
		if s == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("unknown version component %q (expected one of: %s)",
		s, strings.Join(ComponentNames, ", "))
}

// String returns the component name.
func (c Component) String() string {
	if int(c) < 0 || int(c) >= len(ComponentNames) {
		return "unknown"
	}
	return ComponentNames[c]
}

// rcPattern extracts the counter from an "rcN" pre-release identifier.
var rcPattern = regexp.MustCompile(`^rc(\d*)`)

// Version is an ordered tuple of major, minor, patch and rc. An rc of 0 means
// the version is not a pre-release.
type Version struct {
	major uint64
	minor uint64
	patch uint64
	rc    uint64
}

// NewVersion parses a version string, with or without the leading "v".
// Major, minor and patch must all be present and numeric; the rc counter is
// tolerant and defaults to 0 when missing or malformed.
func NewVersion(s string) (*Version, error) {
	parsed, err := semver.StrictNewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedVersion, s, err)
	}
	return &Version{
		major: parsed.Major(),
		minor: parsed.Minor(),
		patch: parsed.Patch(),
		rc:    rcCounter(parsed.Prerelease()),
	}, nil
}

// NewVersionFromComponents builds a Version directly from its fields.
func NewVersionFromComponents(major, minor, patch, rc uint64) *Version {
	return &Version{major: major, minor: minor, patch: patch, rc: rc}
}

// rcCounter reads the numeric counter out of a pre-release identifier.
// Anything that is not an rcN identifier counts as 0.
func rcCounter(prerelease string) uint64 {
	m := rcPattern.FindStringSubmatch(prerelease)
	if m == nil || m[1] == "" {
		return 0
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Bump increments the given component and resets every component of lower
// priority to 0. Bumping major, minor or patch always clears rc; bumping rc
// leaves the more significant components untouched.
func (v *Version) Bump(c Component) *Version {
	next := *v
	switch c {
	case ComponentMajor:
		next.major++
		next.minor, next.patch, next.rc = 0, 0, 0
	case ComponentMinor:
		next.minor++
		next.patch, next.rc = 0, 0
	case ComponentPatch:
		next.patch++
		next.rc = 0
	case ComponentRC:
		next.rc++
	}
	return &next
}

// Major returns the major component.
func (v *Version) Major() uint64 { return v.major }

// Minor returns the minor component.
func (v *Version) Minor() uint64 { return v.minor }

// Patch returns the patch component.
func (v *Version) Patch() uint64 { return v.patch }

// RC returns the pre-release counter.
func (v *Version) RC() uint64 { return v.rc }

// IsPrerelease reports whether the version carries an rc counter.
func (v *Version) IsPrerelease() bool { return v.rc > 0 }

// Semver returns the canonical semver form of the version.
func (v *Version) Semver() *semver.Version {
	prerelease := ""
	if v.rc > 0 {
		prerelease = fmt.Sprintf("rc%d", v.rc)
	}
	return semver.New(v.major, v.minor, v.patch, prerelease, "")
}

// Compare compares two versions by semver precedence.
func (v *Version) Compare(other *Version) int {
	return v.Semver().Compare(other.Semver())
}

// String renders MAJOR.MINOR.PATCH with the -rcN suffix only when rc > 0.
func (v *Version) String() string {
	return v.Semver().String()
}

// TagName returns the version as a git tag with the v prefix.
func (v *Version) TagName() string {
	return "v" + v.String()
}
