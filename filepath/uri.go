package file_path

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// ToURI turns a file path into a file URI.
func ToURI(path string) string {
	p := filepath.ToSlash(path)
	if runtime.GOOS == "windows" && !strings.HasPrefix(p, "/") {
		// file:///C:/path
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// FromURI turns a file URI into a file path with OS separators.
func FromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q (must be file)", u.Scheme)
	}
	p := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(p, "/") && len(p) >= 3 && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}
