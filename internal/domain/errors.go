package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVersion means version text was present but not parseable.
	ErrMalformedVersion = errors.New("malformed version")
	// ErrVersionNotFound means the manifest has no machine-managed version line.
	ErrVersionNotFound = errors.New("managed version declaration not found in manifest")
	// ErrManifestAmbiguous means the manifest has more than one managed version
	// line. Refused outright rather than picking one.
	ErrManifestAmbiguous = errors.New("manifest contains multiple managed version declarations")
	// ErrPushDiverged flags a push failure after a successful local commit.
	// Local and remote history have diverged and need operator attention.
	ErrPushDiverged = errors.New("push failed after local commit: local and remote history have diverged, resume manually")
)

// ExternalToolError wraps a non-success status from an invoked collaborator.
type ExternalToolError struct {
	Tool string
	Err  error
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("external tool %s failed: %v", e.Tool, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExternalToolError) Unwrap() error { return e.Err }

// NewExternalToolError wraps err as a failure of the named tool.
func NewExternalToolError(tool string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalToolError{Tool: tool, Err: err}
}
