package imports

import (
	"slices"
	"strings"

	file_path "github.com/anpylar/anpylar/filepath"
	"github.com/anpylar/anpylar/vfs"
)

type ScanOptions struct {
	// Relative resolves relative imports against each entry's package.
	// Otherwise they are skipped.
	Relative bool
	// Ignores drops names equal to, or nested inside, any of these.
	Ignores []string
}

// PackageContext returns the package relative imports in entry name
// resolve against: a package initializer resolves against itself, a
// module against its parent, and a top level module has none.
func PackageContext(name string, e *vfs.Entry) string {
	if e.Package {
		return name
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// SourceFile is the path an entry was packaged from, for diagnostics.
func SourceFile(name string, e *vfs.Entry) string {
	file := file_path.Slashed(name)
	if e.Package {
		file += "/__init__"
	}
	return file + e.Ext
}

// ScanManifest returns the sorted names imported by the Python entries of m.
func ScanManifest(m *vfs.Manifest, opts ScanOptions) ([]string, error) {
	f := NewFinder()
	for name, e := range m.All() {
		if !e.IsSource() {
			continue
		}
		f.SetPackage("")
		if opts.Relative {
			f.SetPackage(PackageContext(name, e))
		}
		if err := f.Scan(SourceFile(name, e), e.Content); err != nil {
			return nil, err
		}
	}

	imps := f.Imports()
	if len(opts.Ignores) > 0 {
		imps = slices.DeleteFunc(imps, func(name string) bool {
			return Ignored(name, opts.Ignores)
		})
	}
	return imps, nil
}

// Ignored reports whether name is one of ignores or nested inside one.
func Ignored(name string, ignores []string) bool {
	for _, ig := range ignores {
		if ig == "" {
			continue
		}
		if name == ig || strings.HasPrefix(name, ig+".") || strings.HasPrefix(name, ig+"/") {
			return true
		}
	}
	return false
}
