package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/releasecut/releasecut/internal/domain"
)

const githubActionsTrue = "true"

// runCommand runs an external collaborator with a timeout. Output streams to
// the terminal on CI for log visibility; locally stderr is captured and folded
// into the error. Every failure comes back as an ExternalToolError.
func runCommand(ctx context.Context, timeout time.Duration, dir, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	if os.Getenv("GITHUB_ACTIONS") == githubActionsTrue {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &bytes.Buffer{}
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.NewExternalToolError(name, fmt.Errorf("command timed out after %v", timeout))
		}
		if msg := stderr.String(); msg != "" {
			return domain.NewExternalToolError(name, fmt.Errorf("%w (stderr: %s)", err, msg))
		}
		return domain.NewExternalToolError(name, err)
	}
	return nil
}
