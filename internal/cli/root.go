package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/build"
	"github.com/sviny-labs/sviny/internal/config"
)

func newRootCmd(a *app) *cobra.Command {
	var (
		out   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [<component-file>]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` links a single component into a pre-configured Vite project,
builds it into an output directory, and puts the project back the way it was.`,
		Version:       a.version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			component := config.Get(config.KeyDefaultApp)
			if len(args) > 0 {
				component = args[0]
			}
			if !build.HasComponentExt(component) {
				return &UnknownCommandError{Command: component}
			}
			if len(args) > 1 {
				return fmt.Errorf("expected one component file, got %d arguments", len(args))
			}
			if out == "" {
				out = config.Get(config.KeyDefaultOut)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			layout, configFile, err := a.layout(cwd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := &build.Runner{
				Layout:     layout,
				ConfigFile: configFile,
				Bundler:    a.viteBundler(),
				Stdout:     a.stdout,
				Logger:     a.logger,
			}
			return runner.Run(ctx, build.NewOptions(cwd, component, out, watch))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default: build)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild whenever the component changes")
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != cmd {
			defaultHelp(c, args)
			return
		}
		fmt.Fprint(c.OutOrStdout(), usage(c))
	})

	cmd.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newCleanCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
	)
	return cmd
}
