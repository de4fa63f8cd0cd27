package backend

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/anpylar/anpylar/project"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
)

type WebpackOptions struct {
	// Target is the application directory.
	Target string
	// Packages are added on top of those listed in package.json.
	Packages      []string
	NoPackageJSON bool
	// Dist is the distribution directory, Target/DistDir if empty.
	Dist        string
	NoOverwrite bool
	Extensions  []string
	// ResetBundle writes the bundle without application packages.
	ResetBundle bool
	// OnlyBundle writes the bundle and skips the distribution directory.
	OnlyBundle bool
	NoOptimize bool
	Gzip       bool

	// Bundle is the base bundle configuration. The framework is always
	// included.
	Bundle Config
}

type packageSet struct {
	origin string
	pkgs   []string
}

// Webpack bundles the application in Target into Target/BundleFile and
// copies its static content into the distribution directory.
func Webpack(opts WebpackOptions, log zerolog.Logger) error {
	target := filepath.Clean(opts.Target)
	if _, err := os.Stat(target); err != nil {
		return err
	}

	cfg := opts.Bundle
	cfg.Anpylarize = true
	cfg.Debug = true
	if len(opts.Extensions) > 0 {
		cfg.Extensions = opts.Extensions
	}
	b, err := New(cfg, log)
	if err != nil {
		return err
	}

	bundlePath := filepath.Join(target, BundleFile)
	wopts := WriteOptions{Gzip: opts.Gzip}
	if opts.ResetBundle {
		log.Info().Msg("resetting bundle to its default content")
		return b.Write(bundlePath, wopts)
	}

	pjson := project.New()
	if !opts.NoPackageJSON {
		if pjson, err = project.Load(filepath.Join(target, PackageJSON)); err != nil {
			return err
		}
	} else {
		log.Info().Msg("ignoring package.json")
	}

	for _, pkg := range opts.Packages {
		if _, err := os.Stat(filepath.Join(target, pkg)); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	sets := []packageSet{
		{PackageJSON, pjson.Packages()},
		{"command line", opts.Packages},
	}
	if dir := pjson.PkgDir(); dir != "" {
		sets = append(sets, packageSet{"package directory", []string{dir}})
	}
	for _, set := range sets {
		for _, pkg := range set.pkgs {
			log.Debug().Str("package", pkg).Str("origin", set.origin).Msg("adding package")
			if err := addPackagePath(b, filepath.Join(target, pkg), log); err != nil {
				return fmt.Errorf("package %s from %s: %w", pkg, set.origin, err)
			}
		}
	}

	if opts.OnlyBundle && opts.NoOptimize {
		return b.Write(bundlePath, wopts)
	}

	b.SetDebug(pjson.Debug())
	if !opts.NoOptimize {
		if err := b.Optimize(); err != nil {
			return err
		}
	}
	if err := b.Write(bundlePath, wopts); err != nil {
		return err
	}
	if opts.OnlyBundle {
		return nil
	}

	dist := opts.Dist
	if dist == "" {
		dist = filepath.Join(target, DistDir)
	}
	dist = filepath.Clean(dist)
	if _, err := os.Stat(dist); err == nil {
		if opts.NoOverwrite {
			return fmt.Errorf("%w: %s", ErrDistExists, dist)
		}
		log.Info().Str("dir", dist).Msg("removing previous distribution")
		if err := os.RemoveAll(dist); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dist, 0o755); err != nil {
		return err
	}

	if data, ok := pjson.Data(); ok {
		return copyData(target, dist, data, log)
	}
	skip := append(slices.Clone(pjson.Packages()), opts.Packages...)
	skip = append(skip, filepath.Base(dist))
	return copyStatic(target, dist, skip, log)
}

// addPackagePath adds the package at path by its kind. A directory without
// an initializer contributes its sub-directories and its wire artifacts.
func addPackagePath(b *Bundler, path string, log zerolog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return addArtifact(b, path)
	}
	if _, err := os.Stat(filepath.Join(path, initFile)); err == nil {
		return b.AddDir(path)
	}

	log.Debug().Str("dir", path).Msg("no package initializer, adding packages beneath")
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		sub := filepath.Join(path, e.Name())
		if e.IsDir() {
			err = b.AddDir(sub)
		} else if f, ok := vfs.FormatOf(e.Name()); ok && f != vfs.FormatRaw {
			err = addArtifact(b, sub)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func addArtifact(b *Bundler, path string) error {
	f, ok := vfs.FormatOf(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPackageKind, path)
	}
	switch f {
	case vfs.FormatAutoload:
		return b.AddAutoVfs(path)
	case vfs.FormatVariable:
		return b.AddVfsJs(path)
	}
	return b.AddJSON(path)
}

// copyStatic copies the top level of target into dist, leaving packages
// out.
func copyStatic(target, dist string, skip []string, log zerolog.Logger) error {
	entries, err := os.ReadDir(target)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if slices.ContainsFunc(skip, func(s string) bool { return filepath.Clean(s) == e.Name() }) {
			log.Debug().Str("name", e.Name()).Msg("skipping package")
			continue
		}
		if err := copyPath(filepath.Join(target, e.Name()), filepath.Join(dist, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyData copies the listed paths of target into dist. Missing paths are
// skipped.
func copyData(target, dist string, data []string, log zerolog.Logger) error {
	for _, name := range data {
		src := filepath.Join(target, name)
		if _, err := os.Stat(src); err != nil {
			log.Debug().Str("name", name).Msg("data path not found")
			continue
		}
		if err := copyPath(src, filepath.Join(dist, name)); err != nil {
			return err
		}
	}
	return nil
}

func copyPath(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, out)
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()
	_, err = io.Copy(out, in)
	return err
}
