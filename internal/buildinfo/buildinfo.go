// Package buildinfo carries the version stamped in by the linker:
//
//	-ldflags "-X macromedia/internal/buildinfo.Version=v1.2.0 -X macromedia/internal/buildinfo.Commit=abc123"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version if set, else the commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Long returns every stamped field, for -version output.
func Long() string {
	return fmt.Sprintf("macromedia %s (commit %s, built %s)", Version, Commit, Date)
}
