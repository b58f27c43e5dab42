// Package buildinfo exposes the version information of the connectus binary.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/connectus-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Get returns the build information. When the binary was built without
// ldflags, the commit falls back to the VCS revision recorded by the
// toolchain.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
	if info.Commit == "unknown" {
		if rev, ok := vcsRevision(); ok {
			info.Commit = rev
		}
	}
	return info
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12], true
			}
			return s.Value, true
		}
	}
	return "", false
}

// String returns a formatted version string.
func String() string {
	i := Get()
	return fmt.Sprintf("connectus %s (%s) built at %s with %s", i.Version, i.Commit, i.BuildTime, i.GoVersion)
}
