// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/claycms/claycli/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version.
	Version = "0.1.0-dev"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// resolved returns version, commit and build time, filling values that
// were not injected from the toolchain's build information.
func resolved() (string, string, string) {
	version, commit, built := Version, GitCommit, BuildTime
	info, ok := readBuildInfo()
	if !ok {
		return version, commit, built
	}
	if version == "0.1.0-dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "unknown" && len(setting.Value) >= 7 {
				commit = setting.Value[:7]
			}
		case "vcs.time":
			if built == "unknown" {
				built = setting.Value
			}
		}
	}
	return version, commit, built
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	version, commit, built := resolved()
	return fmt.Sprintf("%s (%s, %s)", version, commit, built)
}

// Full returns detailed version information including the Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	version, _, _ := resolved()
	return version
}
