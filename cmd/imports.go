package main

import (
	"fmt"
	"slices"

	"github.com/anpylar/anpylar/frontend/imports"
	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/std"
	"github.com/rs/zerolog"
)

type ImportsCmd struct {
	Dir string `arg:"" help:"Package directory." type:"existingdir"`

	Relative bool     `help:"Resolve relative imports."`
	Internal bool     `help:"Keep imports of the package itself."`
	Ignore   []string `help:"Drop this module and its submodules. Repeatable."`
	Stdlib   bool     `help:"List the standard library modules needed instead."`
}

func (c *ImportsCmd) Run(log zerolog.Logger) error {
	p := paket.New(paket.Options{Extensions: []string{".py"}}, log)
	m, err := p.Dir(c.Dir)
	if err != nil {
		return err
	}

	imps, err := imports.ScanManifest(m, imports.ScanOptions{
		Relative: c.Relative,
		Ignores:  c.Ignore,
	})
	if err != nil {
		return err
	}
	if !c.Internal {
		imps = slices.DeleteFunc(imps, m.Owns)
	}

	if c.Stdlib {
		lib, err := std.StdlibManifest()
		if err != nil {
			return err
		}
		reached, err := imports.Closure(lib, imps)
		if err != nil {
			return err
		}
		imps = imps[:0]
		for _, name := range lib.Names() {
			if _, ok := reached[name]; ok {
				imps = append(imps, name)
			}
		}
	}

	for _, imp := range imps {
		fmt.Println(imp)
	}
	return nil
}
