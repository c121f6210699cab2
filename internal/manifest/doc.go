// Package manifest reads, validates, merges and writes package.json
// dependency manifests. The tool's own manifest is overlaid with the user
// project's dependencies for the duration of a build and restored
// byte-for-byte afterward.
package manifest
