package main

import (
	"fmt"
	"os"

	"github.com/sviny-labs/sviny/internal/cli"
	"github.com/sviny-labs/sviny/internal/ui"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(cli.ExitCode(err))
	}
}
