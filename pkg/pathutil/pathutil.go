// Package pathutil holds the path matching rules shared by detection and
// extraction.
package pathutil

import "strings"

// CleanDir normalizes a directory argument for prefix matching: trailing
// slashes are dropped so "packages/app/" and "packages/app" are equivalent.
func CleanDir(dir string) string {
	return strings.TrimRight(dir, "/")
}

// UnderDir reports whether path lies strictly under dir. The comparison is a
// literal prefix match on dir plus a separator, so "api" never matches
// "api-docs/readme" and metacharacters in directory names stay inert.
func UnderDir(path, dir string) bool {
	return strings.HasPrefix(path, CleanDir(dir)+"/")
}

// AnyUnder reports whether any of the paths lies under dir.
func AnyUnder(paths []string, dir string) bool {
	for _, p := range paths {
		if UnderDir(p, dir) {
			return true
		}
	}
	return false
}
