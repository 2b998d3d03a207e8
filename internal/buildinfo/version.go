// Package buildinfo derives the chromedrv version string from the Go
// build metadata embedded in the binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// shortHashLen matches git's default abbreviated commit hash length.
const shortHashLen = 12

// Version reports the version baked into the running binary.
//
// Builds installed from a tagged release report the tag itself, e.g.
// "v0.3.1". Anything built from a checkout reports a pseudo-version
// assembled by devVersion, and "unknown" when the runtime carries no
// build metadata at all.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	return devVersion(info)
}

// devVersion assembles "dev-<hash>" from the VCS build settings, with a
// "-dirty" suffix when the working tree had uncommitted changes. Builds
// that recorded no revision at all report plain "dev".
func devVersion(info *debug.BuildInfo) string {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	revision := settings["vcs.revision"]
	if revision == "" {
		return "dev"
	}
	if len(revision) > shortHashLen {
		revision = revision[:shortHashLen]
	}

	var b strings.Builder
	b.WriteString("dev-")
	b.WriteString(revision)
	if settings["vcs.modified"] == "true" {
		b.WriteString("-dirty")
	}
	return b.String()
}
