// Package version exposes build version information for dealerdesk.
package version

// version is set at build time via -ldflags "-X github.com/rshade/dealerdesk/pkg/version.version=...".
var version = "dev" //nolint:gochecknoglobals // Overridden by the linker at build time.

// commit is the git commit the binary was built from.
var commit = "unknown" //nolint:gochecknoglobals // Overridden by the linker at build time.

// GetVersion returns the build version string.
func GetVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}
