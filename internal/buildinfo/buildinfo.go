// Package buildinfo holds version metadata stamped in with -ldflags:
//
//	go build -ldflags "-X github.com/pocketledger/pocketledger/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String is the text printed by `pocketledger --version`.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
