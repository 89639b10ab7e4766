package config

import "fmt"

// Set at build time via -ldflags.
var (
	Version       = "dev"
	CommitHash    = "n/a"
	BuildTime     = "n/a"
	VersionString = fmt.Sprintf("%s-%s (%s)", Version, CommitHash, BuildTime)
)
