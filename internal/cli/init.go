package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/config"
	"github.com/sviny-labs/sviny/internal/scaffold"
	"github.com/sviny-labs/sviny/internal/ui"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the Vite build project into the tool root",
		Long: fmt.Sprintf(`Write the pre-configured Vite build project used by %[1]s.

The project goes into the tool root (%[2]s_ROOT or '%[1]s config set root <dir>')
unless --dir is given. Run 'npm install' there afterwards.`, branding.CLIName(), branding.EnvPrefix()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(dir)
			if err != nil {
				return err
			}

			result, err := scaffold.Generate(scaffold.NewData(a.version), target, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Created build project at %s\n", result.OutputDir)
			for _, f := range result.Files {
				fmt.Fprintf(a.stdout, "  %s\n", f)
			}
			for _, w := range result.Warnings {
				fmt.Fprintln(a.stderr, ui.Warning(w))
			}
			fmt.Fprintf(a.stdout, "\nNext: %s\n", ui.Cmd("cd "+result.OutputDir+" && npm install"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the project into (default: tool root)")
	cmd.Flags().BoolVar(&force, "force", false, "Write into a non-empty directory, overwriting files")
	return cmd
}

// initTarget returns dir made absolute, or the tool root when dir is empty.
func initTarget(dir string) (string, error) {
	if dir == "" {
		root, err := config.ToolRoot()
		if err != nil {
			return "", fmt.Errorf("resolving tool root: %w", err)
		}
		return root, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}
