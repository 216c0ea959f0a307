// Package version reports the build version of grandiose.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Version and Commit can be set at build time:
//
//	go build -ldflags="-X github.com/artyom-g-dv/grandiose/internal/version.Version=v0.3.0 \
//	                   -X github.com/artyom-g-dv/grandiose/internal/version.Commit=abc1234"
//
// Otherwise they are taken from the VCS stamp of the build, or fall back to a
// dev version.
var (
	Version = ""
	Commit  = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		info = nil
	}
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills in whichever of version and commit is empty.
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	if info != nil && (version == "" || commit == "") {
		settings := make(map[string]string, len(info.Settings))
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}

		if commit == "" {
			if rev := settings["vcs.revision"]; rev != "" {
				if len(rev) > 7 {
					rev = rev[:7]
				}
				if settings["vcs.modified"] == "true" {
					rev += "-dirty"
				}
				commit = rev
			}
		}

		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if version == "" {
			if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
				version = "dev-" + t.Format("20060102")
			}
		}
	}

	if version == "" {
		version = "dev-" + now.Format("20060102-150405")
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}

// Full returns the version string including commit and Go runtime.
func Full() string {
	return fmt.Sprintf("%s (commit: %s, %s %s/%s)", Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
