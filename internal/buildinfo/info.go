// Package buildinfo carries the version stamp injected at build time.
package buildinfo

// Overridden with -ldflags "-X ..." by release builds; dev builds keep the
// placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
