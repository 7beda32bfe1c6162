// Package version carries build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/tianhongw/attach/version.Version=v0.1.0"
package version

var (
	Version       = "dev"
	GitBranch     = "unknown"
	GitCommit     = "unknown"
	GitSummary    = "unknown"
	GitCommitTime = "unknown"
	BuildTime     = "unknown"
)
