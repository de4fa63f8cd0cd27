package file_path

import (
	"path/filepath"
	"strings"
)

// Clean is a combination of filepath.Clean and filepath.ToSlash
//
// Example:
//
//	C:\H\ -> C:/H
func Clean(p string) string {
	cleaned := filepath.Clean(p)
	return filepath.ToSlash(cleaned)
}

// Dotted turns a relative directory path into a dotted package suffix.
// "." yields the empty string.
//
// Example:
//
//	sub/pkg -> sub.pkg
func Dotted(rel string) string {
	rel = Clean(rel)
	if rel == "." {
		return ""
	}
	return strings.ReplaceAll(rel, "/", ".")
}

// JoinDotted joins non-empty dotted name parts with '.'.
func JoinDotted(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// Slashed turns a dotted package name into a slash path.
func Slashed(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "/")
}
