package cmd

import (
	"fmt"

	"github.com/releasecut/releasecut/internal/domain"
	"github.com/releasecut/releasecut/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNotesCmd creates the notes command
func NewNotesCmd(c *container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes <version>",
		Short: "Print the changelog notes for a version",
		Long: `Print the changelog block for the given version, with the full
commit diff link appended. Accepts the version with or without the v
prefix. An unknown version prints nothing and exits successfully, since
a freshly cut release may legitimately have an empty changelog block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := domain.NewVersion(args[0])
			if err != nil {
				return err
			}
			uc := &usecase.ExtractNotesUseCase{Fs: c.fsRepo, ChangelogPath: c.cfg.ChangelogPath}
			note, err := uc.Execute(cmd.Context(), version)
			if err != nil {
				return err
			}
			if note.IsEmpty() {
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, note.Title)
			fmt.Fprintln(out)
			fmt.Fprintln(out, note.Body)
			return nil
		},
	}
	return cmd
}
