// Package cli defines the Cobra command tree for sviny. The root command is
// the build action; each other file registers one subcommand. Commands only
// parse flags and format output; the work happens in the internal packages.
package cli
