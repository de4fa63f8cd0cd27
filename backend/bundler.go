// Package backend assembles bundles: the interpreter runtime, its standard
// library, the application packages and the loader shim, in that order.
package backend

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/anpylar/anpylar/cache"
	"github.com/anpylar/anpylar/frontend/imports"
	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/std"
	"github.com/anpylar/anpylar/vfs"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config selects where each part of a bundle comes from. Empty paths use
// the embedded defaults.
type Config struct {
	Runtime string `validate:"omitempty,file"`
	Stdlib  string `validate:"omitempty,file"`
	Shim    string `validate:"omitempty,file"`

	// Framework replaces the embedded framework package. It is read in
	// autoload form if FrameworkAuto is set, in variable form otherwise.
	Framework     string `validate:"omitempty,file"`
	FrameworkAuto bool

	// Anpylarize adds the framework package on Prepare.
	Anpylarize bool
	// Debug keeps line information in the runtime and disables
	// minification of packaged directories.
	Debug bool
	// NoMinify keeps Python sources of packaged directories as written.
	NoMinify bool

	Extensions   []string
	MinifyAssets bool
	KeepHeaders  bool
	Cache        cache.Store
}

type bundlePkg struct {
	manifest  *vfs.Manifest
	text      string
	framework bool
}

type Bundler struct {
	cfg Config
	log zerolog.Logger

	debug    bool
	packages []*bundlePkg

	runtime string
	stdlib  string
	shim    string // unpatched

	prepared  bool
	optimized bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func New(cfg Config, log zerolog.Logger) (*Bundler, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid bundle configuration: %w", err)
	}
	return &Bundler{
		cfg:   cfg,
		log:   log,
		debug: cfg.Debug,
	}, nil
}

// Debug reports whether the bundle is in debug mode.
func (b *Bundler) Debug() bool {
	return b.debug
}

// SetDebug switches debug mode. Directories packaged afterwards are not
// minified.
func (b *Bundler) SetDebug(on bool) {
	b.debug = on
}

func (b *Bundler) packager(exts ...string) *paket.Packager {
	if len(exts) == 0 {
		exts = b.cfg.Extensions
	}
	return paket.New(paket.Options{
		Extensions:   exts,
		Minify:       !b.debug && !b.cfg.NoMinify,
		KeepHeaders:  b.cfg.KeepHeaders,
		MinifyAssets: b.cfg.MinifyAssets && !b.debug,
		Cache:        b.cfg.Cache,
	}, b.log)
}

// Packages returns the base names of the packages in bundle order.
func (b *Bundler) Packages() []string {
	names := make([]string, 0, len(b.packages))
	for _, p := range b.packages {
		names = append(names, p.manifest.Base)
	}
	return names
}

func (b *Bundler) add(p *bundlePkg) error {
	if b.optimized {
		return ErrOptimized
	}
	b.packages = append(b.packages, p)
	// framework first, the rest in add order
	slices.SortStableFunc(b.packages, func(x, y *bundlePkg) int {
		switch {
		case x.framework == y.framework:
			return 0
		case x.framework:
			return -1
		default:
			return 1
		}
	})
	b.log.Debug().Str("package", p.manifest.Base).Int("entries", p.manifest.Len()).Msg("added package")
	return nil
}

func (b *Bundler) addRendered(m *vfs.Manifest, framework bool) error {
	if b.optimized {
		return ErrOptimized
	}
	text, err := vfs.Encode(m, vfs.FormatAutoload, vfs.EncodeOptions{})
	if err != nil {
		return err
	}
	return b.add(&bundlePkg{manifest: m, text: string(text), framework: framework})
}

// AddManifest adds an already packaged manifest.
func (b *Bundler) AddManifest(m *vfs.Manifest) error {
	return b.addRendered(m, false)
}

// AddJSON adds a package stored as a raw manifest literal.
func (b *Bundler) AddJSON(path string) error {
	doc, err := b.readPackage(path, vfs.FormatRaw)
	if err != nil {
		return err
	}
	return b.addRendered(doc.Manifest, false)
}

// AddVfsJs adds a package stored in variable form.
func (b *Bundler) AddVfsJs(path string) error {
	return b.addVfsJs(path, false)
}

func (b *Bundler) addVfsJs(path string, framework bool) error {
	doc, err := b.readPackage(path, vfs.FormatVariable)
	if err != nil {
		return err
	}
	return b.addRendered(doc.Manifest, framework)
}

// AddAutoVfs adds a package stored in autoload form. The artifact is
// bundled as it is.
func (b *Bundler) AddAutoVfs(path string) error {
	return b.addAutoVfs(path, false)
}

func (b *Bundler) addAutoVfs(path string, framework bool) error {
	doc, err := b.readPackage(path, vfs.FormatAutoload)
	if err != nil {
		return err
	}
	return b.add(&bundlePkg{manifest: doc.Manifest, text: string(doc.Data), framework: framework})
}

// AddDir packages the directory at path. Empty exts use the configured
// extensions.
func (b *Bundler) AddDir(path string, exts ...string) error {
	if b.optimized {
		return ErrOptimized
	}
	m, err := b.packager(exts...).Dir(path)
	if err != nil {
		return err
	}
	return b.addRendered(m, false)
}

// AddFramework adds the framework package ahead of every other package.
// Adding it twice is a no-op.
func (b *Bundler) AddFramework() error {
	if b.hasFramework() {
		return nil
	}
	switch {
	case b.cfg.Framework != "" && b.cfg.FrameworkAuto:
		return b.addAutoVfs(b.cfg.Framework, true)
	case b.cfg.Framework != "":
		return b.addVfsJs(b.cfg.Framework, true)
	}
	if b.optimized {
		return ErrOptimized
	}
	m, err := std.Framework(b.packager())
	if err != nil {
		return fmt.Errorf("framework: %w", err)
	}
	return b.addRendered(m, true)
}

func (b *Bundler) hasFramework() bool {
	return slices.ContainsFunc(b.packages, func(p *bundlePkg) bool { return p.framework })
}

// readPackage decodes a wire artifact, falling back to locating the
// literal by brace count for envelopes written by other tools.
func (b *Bundler) readPackage(path string, f vfs.Format) (*vfs.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := vfs.Decode(data, f)
	if errors.Is(err, vfs.ErrEnvelope) {
		b.log.Warn().Str("file", path).Str("format", f.String()).
			Msg("unrecognized envelope, locating manifest by brace count")
		doc, err = vfs.DecodeLegacy(data, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Manifest.Base == "" {
		doc.Manifest.Base = baseOf(path, doc.VfsPath)
	}
	return doc, nil
}

func readAsset(override, fallback string) (string, error) {
	if override == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(override)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Prepare loads the runtime, the standard library and the shim, and adds
// the framework when anpylarizing. It runs once.
func (b *Bundler) Prepare() error {
	if b.prepared {
		return nil
	}

	var err error
	if b.runtime, err = readAsset(b.cfg.Runtime, std.Runtime()); err != nil {
		return err
	}
	if b.shim, err = readAsset(b.cfg.Shim, std.Shim()); err != nil {
		return err
	}
	if b.stdlib, err = readAsset(b.cfg.Stdlib, std.Stdlib()); err != nil {
		return err
	}

	if b.cfg.Anpylarize {
		if err := b.AddFramework(); err != nil {
			return err
		}
	}
	b.prepared = true
	return nil
}

// Imports returns the names imported by the bundled packages from outside
// of them.
func (b *Bundler) Imports() ([]string, error) {
	set := make(map[string]struct{})
	for _, p := range b.packages {
		imps, err := imports.ScanManifest(p.manifest, imports.ScanOptions{Relative: true})
		if err != nil {
			return nil, err
		}
		for _, imp := range imps {
			if !b.owned(imp) {
				set[imp] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	slices.Sort(out)
	return out, nil
}

// owned reports whether name belongs to one of the bundled packages.
func (b *Bundler) owned(name string) bool {
	return slices.ContainsFunc(b.packages, func(p *bundlePkg) bool {
		return p.manifest.Owns(name)
	})
}

// Optimize drops every standard library entry the packages cannot reach.
// No package can be added afterwards.
func (b *Bundler) Optimize() error {
	if err := b.Prepare(); err != nil {
		return err
	}
	if b.optimized {
		return nil
	}

	doc, err := vfs.Decode([]byte(b.stdlib), vfs.FormatLibrary)
	if errors.Is(err, vfs.ErrEnvelope) {
		b.log.Warn().Msg("unrecognized stdlib envelope, locating manifest by brace count")
		doc, err = vfs.DecodeLegacy([]byte(b.stdlib), vfs.FormatLibrary)
	}
	if err != nil {
		return fmt.Errorf("stdlib: %w", err)
	}

	imps, err := b.Imports()
	if err != nil {
		return err
	}
	reached, err := imports.Closure(doc.Manifest, imps)
	if err != nil {
		return err
	}
	pruned := doc.Manifest.Filter(func(name string, _ *vfs.Entry) bool {
		_, ok := reached[name]
		return ok
	})
	out, err := doc.Splice(pruned)
	if err != nil {
		return err
	}

	b.log.Info().
		Int("kept", pruned.Len()).
		Int("total", doc.Manifest.Len()).
		Msg("optimized stdlib")
	b.stdlib = string(out)
	b.optimized = true
	return nil
}
