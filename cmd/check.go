package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
)

var errCheckFailed = errors.New("lexical check failed")

type CheckCmd struct {
	Paths  []string `arg:"" help:"Files or directories to check." default:"." type:"path"`
	NoStop bool     `help:"Keep going after the first error." name:"no-stop"`
}

func (c *CheckCmd) Run(log zerolog.Logger) error {
	failed := 0
	check := func(path string) error {
		if vfs.ExtOf(path) != vfs.ExtPython {
			return nil
		}
		log.Debug().Str("file", path).Msg("checking")
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		src, err := lexer.DecodeSource(data)
		if err == nil {
			err = lexer.Check(filepath.ToSlash(path), src)
		}
		if err == nil {
			return nil
		}
		failed++
		log.Error().Msg(err.Error())
		if !c.NoStop {
			return errCheckFailed
		}
		return nil
	}

	for _, root := range c.Paths {
		info, err := os.Stat(root)
		if err != nil {
			log.Warn().Str("path", root).Msg("neither file nor directory, skipping")
			continue
		}
		if !info.IsDir() {
			err = check(root)
		} else {
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == "__pycache__" {
						return fs.SkipDir
					}
					return nil
				}
				return check(path)
			})
		}
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d file(s)", errCheckFailed, failed)
	}
	return nil
}
