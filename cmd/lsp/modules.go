package lsp

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	file_path "github.com/anpylar/anpylar/filepath"
)

const initFile = "__init__.py"

// module locates a Python file inside its package tree.
type module struct {
	// Name is the dotted module name, empty for a file outside any package
	// whose stem is not an identifier.
	Name string
	// Package is what relative imports resolve against.
	Package string
	// Root is the directory holding the top level package.
	Root string
}

// moduleOf walks up from path while directories hold an initializer.
func moduleOf(path string) module {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	var parts []string
	if base != initFile {
		parts = append(parts, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	for isPackage(dir) {
		parts = append(parts, filepath.Base(dir))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	slices.Reverse(parts)

	m := module{Name: file_path.JoinDotted(parts...), Root: dir}
	switch {
	case base == initFile:
		m.Package = m.Name
	case len(parts) > 1:
		m.Package = file_path.JoinDotted(parts[:len(parts)-1]...)
	}
	return m
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, initFile))
	return err == nil && !info.IsDir()
}

// resolve finds the file of a dotted module under the first root that has
// it: a.b is a/b.py or a/b/__init__.py.
func resolve(name string, roots ...string) (string, bool) {
	rel := filepath.FromSlash(file_path.Slashed(name))
	for _, root := range roots {
		if root == "" {
			continue
		}
		for _, cand := range []string{
			filepath.Join(root, rel+".py"),
			filepath.Join(root, rel, initFile),
		} {
			if info, err := os.Stat(cand); err == nil && !info.IsDir() {
				return cand, true
			}
		}
	}
	return "", false
}
