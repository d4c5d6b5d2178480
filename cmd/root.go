package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "releasecut",
	Short: "A CLI tool for cutting project releases",
	Long: `releasecut drives the whole release pipeline: it bumps the manifest
version, refreshes dependent version files, regenerates the changelog,
commits and tags the result, and publishes a GitHub release.`,
}

func Execute() error {
	return rootCmd.Execute()
}
