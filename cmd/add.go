package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/anpylar/anpylar/backend"
	"github.com/anpylar/anpylar/project"
	"github.com/rs/zerolog"
)

type AddCmd struct {
	Packages []string `arg:"" optional:"" help:"Package directories or files, relative to the target."`

	Target string `help:"Application directory holding package.json." default:"." type:"existingdir"`
	PkgDir string `help:"Default installation directory for packages." name:"pkgdir"`
	Force  bool   `help:"Replace an existing installation directory."`
	Create bool   `help:"Create package.json if missing."`
}

func (c *AddCmd) Run(log zerolog.Logger) error {
	path := filepath.Join(c.Target, backend.PackageJSON)
	pjson, err := project.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && c.Create:
		log.Info().Str("file", path).Msg("creating a basic package.json")
		pjson = project.New()
	case err != nil:
		return err
	}

	for _, pkg := range c.Packages {
		if _, err := os.Stat(filepath.Join(c.Target, pkg)); err != nil {
			log.Warn().Str("package", pkg).Msg("package not found under the target")
		}
	}
	pjson.AddPackages(c.Packages...)

	if c.PkgDir != "" && !pjson.SetPkgDir(c.PkgDir, c.Force) {
		log.Warn().Str("pkgdir", pjson.PkgDir()).Msg("keeping existing installation directory, use --force to replace it")
	}

	log.Info().Strs("packages", pjson.Packages()).Msg("updating package.json")
	return pjson.Save(path)
}
