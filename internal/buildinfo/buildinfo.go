// Package buildinfo carries the identifiers stamped in with -ldflags -X.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, or the commit when no version was stamped.
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// String is the one-line form printed by the CLI.
func String() string {
	return fmt.Sprintf("s3lcd %s (commit %s, built %s)", Version, Commit, Date)
}
