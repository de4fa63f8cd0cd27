package main

import (
	"github.com/anpylar/anpylar/backend"
	"github.com/anpylar/anpylar/frontend"
	"github.com/rs/zerolog"
)

type WebpackCmd struct {
	Target string `arg:"" optional:"" help:"Application directory." default:"." type:"existingdir"`

	Package       []string `help:"Add a package directory or vfs.js/auto_vfs.js file, relative to the target. Repeatable."`
	NoPackageJSON bool     `help:"Ignore package.json." name:"no-package-json"`
	Dist          string   `help:"Distribution directory (default: <target>/__webpack__)." type:"path"`
	NoOverwrite   bool     `help:"Fail if the distribution directory exists." name:"no-overwrite"`
	Extensions    string   `help:"Comma separated extensions to package from directories."`
	ResetAnpylar  bool     `help:"Reset the bundle to its default content and stop." name:"reset-anpylar" xor:"mode"`
	OnlyAnpylar   bool     `help:"Update only the bundle." name:"only-anpylar" xor:"mode"`
	NoOptimize    bool     `help:"Bundle the whole standard library." name:"no-optimize"`
	Gzip          bool     `help:"Also write a gzip compressed copy of the bundle."`
}

func (c *WebpackCmd) Run(log zerolog.Logger, cfg *frontend.Config) error {
	store, closeCache := openCache(cfg, log)
	defer closeCache()

	bc := cfg.Bundle
	return backend.Webpack(backend.WebpackOptions{
		Target:        c.Target,
		Packages:      c.Package,
		NoPackageJSON: c.NoPackageJSON,
		Dist:          c.Dist,
		NoOverwrite:   c.NoOverwrite,
		Extensions:    extensions(c.Extensions, cfg),
		ResetBundle:   c.ResetAnpylar,
		OnlyBundle:    c.OnlyAnpylar,
		NoOptimize:    c.NoOptimize,
		Gzip:          c.Gzip || bc.Gzip,
		Bundle: backend.Config{
			Runtime:       bc.Runtime,
			Stdlib:        bc.Stdlib,
			Shim:          bc.Shim,
			Framework:     bc.Framework,
			FrameworkAuto: bc.FrameworkAuto,
			NoMinify:      !cfg.Paket.Minify,
			MinifyAssets:  cfg.Paket.MinifyAssets,
			KeepHeaders:   cfg.Paket.KeepHeaders,
			Cache:         store,
		},
	}, log)
}
