// Package bundler delegates builds to the external bundler. Vite, the only
// implementation, is driven through node: a small embedded ES module imports
// vite from the tool root and calls its programmatic build() with the
// configuration serialized by Build.
package bundler
