package version

import "runtime"

var (
	Version   = "dev"             // ex: v0.1.0, set via ldflags
	Commit    = "none"            // ex: abcd123, set via ldflags
	BuildDate = "unknown"         // set via ldflags
	GoVersion = runtime.Version() // go version
)
