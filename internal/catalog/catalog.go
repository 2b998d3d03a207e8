// Package catalog holds the static lookup tables that drive version
// resolution and platform targeting.
//
// The tables are process-wide constant data: the legacy Chrome-major to
// driver-version map, the OS identifier to download-slug map, and the
// per-OS browser probe commands. They are initialized once and never
// mutated.
package catalog

import (
	"fmt"
	"runtime"
)

// OS identifiers recognized on the command line and in download paths.
// The set is closed: every identifier is a key in both the slug table
// and the probe table.
const (
	Linux    = "linux"
	Mac      = "mac"
	MacIntel = "mac-intel"
	MacARM   = "mac-arm"
	Win      = "win"
)

// UnknownOSError reports an OS identifier outside the supported set.
type UnknownOSError struct {
	OS string
}

func (e *UnknownOSError) Error() string {
	return fmt.Sprintf("unknown OS identifier %q (supported: linux, mac, mac-intel, mac-arm, win)", e.OS)
}

// slugs maps each OS identifier to the platform segment used in
// chrome-for-testing download URLs. Versions below 115 remap some of
// these to their legacy spellings; see resolve.Slug.
var slugs = map[string]string{
	Linux:    "linux64",
	Mac:      "mac-x64",
	MacIntel: "mac-x64",
	MacARM:   "mac-arm64",
	Win:      "win32",
}

// legacyDriverVersions maps Chrome majors below 70 to the last
// ChromeDriver 2.x release that supported them.
var legacyDriverVersions = map[int]string{
	60: "2.33",
	61: "2.34",
	62: "2.35",
	63: "2.36",
	64: "2.37",
	65: "2.38",
	66: "2.40",
	67: "2.41",
	68: "2.42",
	69: "2.44",
}

// Probe is a shell command that prints an installed browser's version.
type Probe struct {
	Name string
	Args []string
}

// probes lists, per OS, the browser executables to ask for a version,
// in preference order. Paths that do not exist simply produce no match.
var probes = map[string][]Probe{
	Linux: {
		{Name: "google-chrome", Args: []string{"--version"}},
		{Name: "google-chrome-stable", Args: []string{"--version"}},
		{Name: "chromium", Args: []string{"--version"}},
		{Name: "chromium-browser", Args: []string{"--version"}},
	},
	Mac: {
		{Name: "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", Args: []string{"--version"}},
		{Name: "/Applications/Chromium.app/Contents/MacOS/Chromium", Args: []string{"--version"}},
	},
	MacIntel: {
		{Name: "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", Args: []string{"--version"}},
		{Name: "/Applications/Chromium.app/Contents/MacOS/Chromium", Args: []string{"--version"}},
	},
	MacARM: {
		{Name: "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", Args: []string{"--version"}},
		{Name: "/Applications/Chromium.app/Contents/MacOS/Chromium", Args: []string{"--version"}},
	},
	Win: {
		{Name: "reg", Args: []string{"query", `HKCU\Software\Google\Chrome\BLBeacon`, "/v", "version"}},
		{Name: "powershell", Args: []string{"-NoProfile", "-Command",
			`(Get-Item 'C:\Program Files\Google\Chrome\Application\chrome.exe').VersionInfo.ProductVersion`}},
		{Name: "powershell", Args: []string{"-NoProfile", "-Command",
			`(Get-Item 'C:\Program Files (x86)\Google\Chrome\Application\chrome.exe').VersionInfo.ProductVersion`}},
	},
}

// All returns every supported OS identifier, in install order.
// Mac covers both architectures via mac-intel and mac-arm, so the
// generic "mac" identifier is not part of the multi-OS install set.
func All() []string {
	return []string{Linux, MacIntel, MacARM, Win}
}

// IsValid reports whether osID is a recognized OS identifier.
func IsValid(osID string) bool {
	_, ok := slugs[osID]
	return ok
}

// Current returns the OS identifier matching the running platform.
func Current() string {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return MacARM
		}
		return MacIntel
	case "windows":
		return Win
	default:
		return Linux
	}
}

// Slug returns the chrome-for-testing platform slug for osID.
func Slug(osID string) (string, error) {
	s, ok := slugs[osID]
	if !ok {
		return "", &UnknownOSError{OS: osID}
	}
	return s, nil
}

// LegacyDriverVersion returns the driver version for a Chrome major
// below 70, and whether the major is known at all.
func LegacyDriverVersion(major int) (string, bool) {
	v, ok := legacyDriverVersions[major]
	return v, ok
}

// Probes returns the browser probe commands for osID, in order.
func Probes(osID string) ([]Probe, error) {
	p, ok := probes[osID]
	if !ok {
		return nil, &UnknownOSError{OS: osID}
	}
	return p, nil
}
