package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/config"
	"github.com/sviny-labs/sviny/internal/doctor"
	"github.com/sviny-labs/sviny/internal/ui"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check node, the tool root and leftover session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			layout, configFile, err := a.layout(cwd)
			if err != nil {
				return err
			}

			problems := doctor.Check(a.stdout, doctor.Config{
				Node:       config.Get(config.KeyNode),
				Layout:     layout,
				ConfigFile: configFile,
			})
			fmt.Fprintln(a.stdout)
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Fprintln(a.stdout, ui.Success("No problems found."))
			return nil
		},
	}
}
