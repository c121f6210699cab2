// Package workspace owns the temporary mutation of the tool root during a
// build. A Session overlays the user's dependencies onto the tool manifest
// and links the user's component over the tool's entry point; Release puts
// both back. A journal written before the first mutation lets Recover undo
// a session whose process died before releasing.
package workspace
