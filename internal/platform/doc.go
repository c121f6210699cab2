// Package platform wraps the filesystem calls whose behavior differs between
// operating systems: symlink creation and removal, and permission bits. On
// Windows without developer mode, a symlink degrades to a file copy plus a
// .target sidecar recording what it stands in for.
package platform
