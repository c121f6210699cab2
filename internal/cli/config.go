package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  fmt.Sprintf("Read and write settings stored at %s.", config.FilePath()),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				if err := config.Set(key, value); err != nil {
					return fmt.Errorf("setting config key %q: %w", key, err)
				}
				fmt.Fprintf(a.stdout, "Set %s = %s\n", key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(a.stdout, config.Get(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every configuration value",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, key := range config.Keys {
					fmt.Fprintf(a.stdout, "%-12s %s\n", key, config.Get(key))
				}
				return nil
			},
		},
	)
	return cmd
}
