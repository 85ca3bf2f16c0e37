package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveUnitFile returns the first existing "<dir>/<lowercase name>.pp" (or
// ".pas") path across searchPath, in order, or ("", false) if none exists.
func ResolveUnitFile(name string, searchPath []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, dir := range searchPath {
		for _, ext := range []string{".pp", ".pas"} {
			candidate := filepath.Join(dir, lower+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}
	}
	return "", false
}

// Canonicalize resolves path to an absolute, symlink-free form where
// possible, falling back to the input path if resolution fails. Used to
// dedupe units reachable from more than one uses-clause.
func Canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		if abs, err := filepath.Abs(resolved); err == nil {
			return abs
		}
		return resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
