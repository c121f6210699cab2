// Package scaffold writes the pre-configured Vite build project (the tool
// root) from embedded templates. It powers the "sviny init" command.
package scaffold
