// Package paket turns a directory tree into a vfs.Manifest.
//
// Directories become dotted package names rooted at the tree's base name.
// Python and JavaScript files are named package.stem, a package's
// __init__.py takes the package name itself and carries the package marker,
// and every other asset is named by its slash path so that it can be looked
// up like a file.
package paket

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/anpylar/anpylar/cache"
	file_path "github.com/anpylar/anpylar/filepath"
	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/anpylar/anpylar/frontend/minify"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
)

const initFile = "__init__"

// DefaultExtensions are packaged when Options.Extensions is empty.
var DefaultExtensions = []string{vfs.ExtPython, vfs.ExtJS, vfs.ExtHTML, vfs.ExtCSS}

type Options struct {
	Extensions []string
	// Minify Python sources.
	Minify bool
	// KeepHeaders keeps shebang and coding lines of minified sources.
	KeepHeaders bool
	// MinifyAssets minifies JavaScript and CSS assets.
	MinifyAssets bool
	// Cache, if set, holds previously minified sources.
	Cache cache.Store
}

type Packager struct {
	opts Options
	exts map[string]struct{}
	log  zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Packager {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	p := &Packager{
		opts: opts,
		exts: make(map[string]struct{}, len(exts)),
		log:  log,
	}
	for _, ext := range exts {
		p.exts[vfs.NormalizeExt(ext)] = struct{}{}
	}
	return p
}

// ParseExtensions splits a comma separated extension list.
func ParseExtensions(list string) []string {
	var exts []string
	for _, ext := range strings.Split(list, ",") {
		if ext = vfs.NormalizeExt(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// BaseName returns the package name of a root directory: its base name,
// resolved against the working directory for "." and "..".
func BaseName(root string) (string, error) {
	clean := filepath.Clean(root)
	base := filepath.Base(clean)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		abs, err := filepath.Abs(clean)
		if err != nil {
			return "", err
		}
		base = filepath.Base(abs)
	}
	return base, nil
}

// Dir packages the tree under root.
func (p *Packager) Dir(root string) (*vfs.Manifest, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	base, err := BaseName(root)
	if err != nil {
		return nil, err
	}

	m, err := p.FS(os.DirFS(root), ".", base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	return m, nil
}

// FS packages the tree under root in fsys. With an empty base the top level
// files become top level names.
func (p *Packager) FS(fsys fs.FS, root, base string) (*vfs.Manifest, error) {
	m := vfs.New(base)
	origins := make(map[string]string)

	err := fs.WalkDir(fsys, root, func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if fpath != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		ext := vfs.ExtOf(d.Name())
		if _, ok := p.exts[ext]; !ok {
			return nil
		}

		rel := fpath
		if root != "." {
			rel = strings.TrimPrefix(fpath, root+"/")
		}
		name, pkgInit := entryName(base, rel, ext)
		if name == "" {
			p.log.Warn().Str("file", fpath).Msg("skipping package initializer outside any package")
			return nil
		}
		if prev, ok := origins[name]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrNameCollision, prev, fpath, name)
		}
		origins[name] = fpath

		if ext == vfs.ExtPython && !pkgInit {
			if stem := strings.TrimSuffix(d.Name(), path.Ext(d.Name())); !lexer.IsValidIdent(stem) {
				p.log.Warn().Str("file", fpath).Msg("module name is not an identifier and cannot be imported")
			}
		}

		data, err := fs.ReadFile(fsys, fpath)
		if err != nil {
			return err
		}
		content, err := p.content(fpath, ext, data)
		if err != nil {
			return err
		}

		m.Set(name, &vfs.Entry{Ext: ext, Content: content, Package: pkgInit})
		p.log.Debug().Str("name", name).Str("file", fpath).Msg("packaged")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func skipDir(name string) bool {
	return name == "__pycache__" || strings.HasPrefix(name, ".")
}

// entryName maps a path relative to the package root to its manifest name.
// The second result reports a package initializer.
func entryName(base, rel, ext string) (string, bool) {
	dir, file := path.Split(rel)
	pkg := file_path.JoinDotted(base, file_path.Dotted(dir))
	stem := strings.TrimSuffix(file, path.Ext(file))

	switch {
	case ext == vfs.ExtPython && stem == initFile:
		return pkg, true
	case ext == vfs.ExtPython || ext == vfs.ExtJS:
		return file_path.JoinDotted(pkg, stem), false
	case pkg == "":
		return file, false
	default:
		return file_path.Slashed(pkg) + "/" + file, false
	}
}

func (p *Packager) content(fpath, ext string, data []byte) (string, error) {
	switch ext {
	case vfs.ExtPython:
		src, err := lexer.DecodeSource(data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", fpath, err)
		}
		if !p.opts.Minify {
			return src, nil
		}
		return p.minify(fpath, src)
	case vfs.ExtJS, vfs.ExtCSS:
		if p.opts.MinifyAssets {
			return minifyAsset(fpath, ext, data)
		}
	}
	return string(data), nil
}

func (p *Packager) minify(fpath, src string) (string, error) {
	store := p.opts.Cache
	key := cache.MinifyKey(src, p.opts.KeepHeaders)
	if store != nil {
		cached, err := store.Get(key)
		if err == nil {
			return string(cached), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			p.log.Warn().Err(err).Str("file", fpath).Msg("minify cache read failed")
		}
	}

	out, err := minify.Minify(src, minify.KeepHeaders(p.opts.KeepHeaders), minify.Filename(fpath))
	if err != nil {
		return "", err
	}

	if store != nil {
		if err := store.Put(key, []byte(out)); err != nil {
			p.log.Warn().Err(err).Str("file", fpath).Msg("minify cache write failed")
		}
	}
	return out, nil
}
