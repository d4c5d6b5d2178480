// Package manifest rewrites the machine-managed version declaration inside a
// build manifest without disturbing any other text.
package manifest

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/releasecut/releasecut/internal/domain"
)

// Marker is the trailing annotation that flags the one version declaration as
// machine-managed, distinguishing it from any other version-shaped text.
const Marker = "# auto"

// versionLine anchors on line start and matches only the marked declaration.
// The rc capture is tolerant: missing digits parse as 0.
var versionLine = regexp.MustCompile(`(?m)^version = "(\d+)\.(\d+)\.(\d+)(?:-rc)?(\d*)[^"]*" ` + regexp.QuoteMeta(Marker))

// Result carries the rewritten document together with the version transition.
type Result struct {
	Document   string
	OldVersion *domain.Version
	NewVersion *domain.Version
}

// Patch locates the unique managed version line in document, bumps the given
// component and re-serializes the line in place. Every byte outside the
// matched span is preserved. Zero matches fail with ErrVersionNotFound and
// more than one match is rejected as ambiguous.
func Patch(document string, component domain.Component) (*Result, error) {
	matches := versionLine.FindAllStringSubmatchIndex(document, -1)
	switch {
	case len(matches) == 0:
		return nil, domain.ErrVersionNotFound
	case len(matches) > 1:
		return nil, fmt.Errorf("%w: found %d marked lines", domain.ErrManifestAmbiguous, len(matches))
	}
	m := matches[0]
	oldVersion, err := versionFromCaptures(document, m)
	if err != nil {
		return nil, err
	}
	newVersion := oldVersion.Bump(component)
	line := fmt.Sprintf(`version = "%s" %s`, newVersion.String(), Marker)
	return &Result{
		Document:   document[:m[0]] + line + document[m[1]:],
		OldVersion: oldVersion,
		NewVersion: newVersion,
	}, nil
}

// versionFromCaptures converts the four capture groups of a match into a
// Version. Group offsets come in (start, end) pairs after the full match.
func versionFromCaptures(document string, m []int) (*domain.Version, error) {
	parts := make([]uint64, 3)
	for i := range parts {
		start, end := m[2+2*i], m[3+2*i]
		n, err := strconv.ParseUint(document[start:end], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", domain.ErrMalformedVersion, document[start:end], err)
		}
		parts[i] = n
	}
	var rc uint64
	if start, end := m[8], m[9]; start >= 0 && start < end {
		// Tolerant per the wire format: a malformed rc capture counts as 0.
		if n, err := strconv.ParseUint(document[start:end], 10, 64); err == nil {
			rc = n
		}
	}
	return domain.NewVersionFromComponents(parts[0], parts[1], parts[2], rc), nil
}
