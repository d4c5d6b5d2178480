package cmd

import (
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewBumpCmd creates the bump command
func NewBumpCmd(c *container) *cobra.Command {
	var (
		bumpDryRun      bool
		bumpSkipPublish bool
		bumpCIOutput    bool
	)
	cmd := &cobra.Command{
		Use:       "bump <component>",
		Short:     "Bump the version and cut a release",
		ValidArgs: domain.ComponentNames,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Bump the named version component and run the release pipeline.

The pipeline rewrites the marked version line in the build manifest,
refreshes the cargo lockfile and the node binding version, regenerates
the changelog, commits and pushes, creates and pushes the release tag,
and publishes a GitHub release with the notes for the new version.

Bumping a component resets every lower-priority component: a minor bump
zeroes patch and drops the release-candidate counter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			component, err := domain.ParseComponent(args[0])
			if err != nil {
				return err
			}
			cfg := orchestrator.BumpConfig{
				Component:   component,
				DryRun:      bumpDryRun,
				SkipPublish: bumpSkipPublish,
				CIOutput:    bumpCIOutput,
			}
			release, err := c.newOrchestrator().Execute(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !bumpCIOutput && release != nil && release.NewVersion != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", release.OldVersion, release.NewVersion)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "Stop after regenerating the changelog, before any git operation")
	cmd.Flags().BoolVar(&bumpSkipPublish, "skip-publish", false, "Commit, push and tag but skip the GitHub release")
	cmd.Flags().BoolVar(&bumpCIOutput, "ci-output", false, "Output in CI-friendly key=value format")
	return cmd
}
