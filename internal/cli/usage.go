package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/ui"
)

// usage renders the root help block: header, synopsis, options and commands.
func usage(cmd *cobra.Command) string {
	name := branding.CLIName()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", ui.TitleStyle.Render(branding.DisplayName()))
	fmt.Fprintf(&b, "  %s\n\n", branding.Description())

	fmt.Fprintf(&b, "%s\n\n", ui.TitleStyle.Render("Usage"))
	fmt.Fprintf(&b, "  %s [<component-file>] [--out|-o <dir>] [--watch|-w]\n", name)
	fmt.Fprintf(&b, "  %s <command> [flags]\n\n", name)

	fmt.Fprintf(&b, "%s\n\n", ui.TitleStyle.Render("Options"))
	b.WriteString(cmd.LocalFlags().FlagUsages())
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n\n", ui.TitleStyle.Render("Commands"))
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() && c.Name() != "help" {
			continue
		}
		fmt.Fprintf(&b, "  %-10s %s\n", c.Name(), c.Short)
	}
	return b.String()
}
