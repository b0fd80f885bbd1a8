// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/gfxinfo/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// stamp fills GitCommit, GitDirty, and BuildTime from the binary's
// embedded VCS settings when ldflags left them at their defaults.
var stamp = sync.OnceFunc(func() {
	if GitCommit != "unknown" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	applyBuildSettings(info.Settings)
})

func applyBuildSettings(settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			GitCommit = setting.Value
			if len(GitCommit) > 12 {
				GitCommit = GitCommit[:12]
			}
		case "vcs.modified":
			GitDirty = setting.Value
		case "vcs.time":
			if BuildTime == "unknown" {
				BuildTime = setting.Value
			}
		}
	}
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	stamp()
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	stamp()
	return GitCommit
}

// Print writes "<binary> <Full()>" to w.
func Print(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n", binary, Full())
}
