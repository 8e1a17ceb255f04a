// Package version reports the build version of the hotline binaries.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time:
//
//	go build -ldflags "-X github.com/hotline-inc/hotline/internal/shared/version.Version=1.4.0" ./cmd/hotline
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns the canonical build version, or "dev" for builds without a
// valid semantic version.
func String() string {
	return canonical(Version)
}

func canonical(v string) string {
	n := Normalize(v)
	if !semver.IsValid(n) {
		return "dev"
	}
	return semver.Canonical(n)
}

// IsRelease reports whether the build carries a release version, i.e. a
// valid semantic version without a prerelease suffix.
func IsRelease() bool {
	n := Normalize(Version)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}
