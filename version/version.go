// Package version exposes the application version string.
package version

import (
	"fmt"
	"strings"
)

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// validBuildCharacters limits what may appear in the build metadata suffix.
const validBuildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

// appBuild can be overridden at build time with
// '-ldflags "-X github.com/keyfold/keyfold/version.appBuild=foo"'.
// It must only contain characters from validBuildCharacters.
var appBuild string

var memoized string

// Version returns the application version, with build metadata appended
// when it was supplied and is well formed.
func Version() string {
	if memoized == "" {
		memoized = fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
		if build := sanitizeBuild(appBuild); build != "" {
			memoized = fmt.Sprintf("%s-%s", memoized, build)
		}
	}
	return memoized
}

func sanitizeBuild(build string) string {
	for _, r := range build {
		if !strings.ContainsRune(validBuildCharacters, r) {
			return ""
		}
	}
	return build
}
