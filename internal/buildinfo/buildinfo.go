// Package buildinfo exposes version metadata stamped at build time.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/ardnew/nanokvm/internal/buildinfo.Version=..."
// at release time; development builds fall back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// String returns a single-line version description.
func String() string {
	version := Version
	commit := Commit

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "" && info.Main.Version != "" {
			version = info.Main.Version
		}
		if commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
					break
				}
			}
		}
	}
	if version == "" {
		version = "devel"
	}

	s := fmt.Sprintf("nanokvm %s", version)
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		s += fmt.Sprintf(" (%s)", commit)
	}
	if Date != "" {
		s += fmt.Sprintf(" built %s", Date)
	}
	return s + fmt.Sprintf(" %s/%s %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
