// Package build turns parsed command-line options into one bundler run
// inside a workspace session.
package build
