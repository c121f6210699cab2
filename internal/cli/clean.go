package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/ui"
	"github.com/sviny-labs/sviny/internal/workspace"
)

func newCleanCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Undo a build that was interrupted before it could clean up",
		Long: `Remove a leftover component link from the tool root and restore the
package.json saved by the interrupted session.

A regular file at the link location is never removed. A session whose process
is still running is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			layout, _, err := a.layout(cwd)
			if err != nil {
				return err
			}

			rec, err := workspace.Recover(layout, force, a.logger)
			if err != nil {
				return err
			}
			if rec.Nothing() {
				fmt.Fprintln(a.stdout, "Nothing to clean.")
				return nil
			}
			if rec.RemovedLink != "" {
				fmt.Fprintf(a.stdout, "Removed link %s\n", rec.RemovedLink)
			}
			if rec.RestoredManifest != "" {
				fmt.Fprintf(a.stdout, "Restored %s\n", rec.RestoredManifest)
			}
			if rec.RemovedJournal {
				fmt.Fprintf(a.stdout, "Removed %s\n", layout.JournalPath)
			}
			fmt.Fprintln(a.stdout, ui.Success("Tool root is clean."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recover even if the session's process is still running")
	return cmd
}
