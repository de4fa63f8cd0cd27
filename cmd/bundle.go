package main

import (
	"github.com/anpylar/anpylar/backend"
	"github.com/anpylar/anpylar/frontend"
	"github.com/rs/zerolog"
)

type BundleCmd struct {
	Output string `arg:"" optional:"" help:"Bundle file (default: bundle.output, anpylar.js)." type:"path"`

	Brython       string `help:"Use this runtime instead of the embedded one." group:"Runtime files" type:"existingfile"`
	BrythonStdlib string `help:"Use this standard library instead of the embedded one." name:"brython-stdlib" group:"Runtime files" type:"existingfile"`

	AnpylarJS         string `help:"Use this loader shim." name:"anpylar-js" group:"Framework" type:"existingfile"`
	AnpylarVfs        string `help:"Use this framework package in vfs.js form." name:"anpylar-vfs" group:"Framework" xor:"framework" type:"existingfile"`
	AnpylarAuto       string `help:"Use this framework package in auto_vfs.js form." name:"anpylar-auto" group:"Framework" xor:"framework" type:"existingfile"`
	DisableAnpylarVfs bool   `help:"Do not add the framework package." name:"disable-anpylar-vfs" group:"Framework"`

	JSON    []string `help:"Add a package in raw JSON form." name:"json" group:"Packages" type:"existingfile"`
	VfsJs   []string `help:"Add a package in vfs.js form." name:"vfs-js" group:"Packages" type:"existingfile"`
	AutoVfs []string `help:"Add a package in auto_vfs.js form." name:"auto-vfs" group:"Packages" type:"existingfile"`
	PkgDir  []string `help:"Add a package from a directory." name:"pkg-dir" group:"Packages" type:"existingdir"`

	Debug      bool   `help:"Keep line information and do not minify."`
	Optimize   bool   `help:"Bundle only the standard library modules the packages need."`
	Gzip       bool   `help:"Also write a gzip compressed copy."`
	Extensions string `help:"Comma separated extensions to package from directories."`
}

func (c *BundleCmd) Run(log zerolog.Logger, cfg *frontend.Config) error {
	store, closeCache := openCache(cfg, log)
	defer closeCache()

	bc := cfg.Bundle
	bcfg := backend.Config{
		Runtime:       or(c.Brython, bc.Runtime),
		Stdlib:        or(c.BrythonStdlib, bc.Stdlib),
		Shim:          or(c.AnpylarJS, bc.Shim),
		Framework:     bc.Framework,
		FrameworkAuto: bc.FrameworkAuto,
		Anpylarize:    bc.Anpylarize && !c.DisableAnpylarVfs,
		Debug:         c.Debug || bc.Debug,
		NoMinify:      !cfg.Paket.Minify,
		Extensions:    extensions(c.Extensions, cfg),
		MinifyAssets:  cfg.Paket.MinifyAssets,
		KeepHeaders:   cfg.Paket.KeepHeaders,
		Cache:         store,
	}
	switch {
	case c.AnpylarAuto != "":
		bcfg.Framework, bcfg.FrameworkAuto = c.AnpylarAuto, true
	case c.AnpylarVfs != "":
		bcfg.Framework, bcfg.FrameworkAuto = c.AnpylarVfs, false
	}
	if bcfg.Debug {
		log.Info().Msg("keeping line information")
	}

	b, err := backend.New(bcfg, log)
	if err != nil {
		return err
	}

	for _, path := range c.JSON {
		log.Debug().Str("file", path).Msg("adding raw JSON package")
		if err := b.AddJSON(path); err != nil {
			return err
		}
	}
	for _, path := range c.VfsJs {
		log.Debug().Str("file", path).Msg("adding vfs.js package")
		if err := b.AddVfsJs(path); err != nil {
			return err
		}
	}
	for _, path := range c.AutoVfs {
		log.Debug().Str("file", path).Msg("adding auto_vfs.js package")
		if err := b.AddAutoVfs(path); err != nil {
			return err
		}
	}
	for _, dir := range c.PkgDir {
		log.Debug().Str("dir", dir).Msg("adding directory package")
		if err := b.AddDir(dir); err != nil {
			return err
		}
	}

	log.Info().Msg("preparing bundle")
	if err := b.Prepare(); err != nil {
		return err
	}
	if c.Optimize || bc.Optimize {
		log.Info().Msg("optimizing stdlib")
		if err := b.Optimize(); err != nil {
			return err
		}
	}
	return b.Write(or(c.Output, bc.Output), backend.WriteOptions{Gzip: c.Gzip || bc.Gzip})
}

func or(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
