package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/anpylar/anpylar/frontend"
	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
)

type PaketizeCmd struct {
	Dir     string `arg:"" help:"Directory to package." type:"existingdir"`
	Outfile string `arg:"" optional:"" help:"Output file (default: the directory name plus the format suffix)." type:"path"`

	Format       string   `help:"Output format: raw, variable or autoload (default: paket.format)."`
	VarName      string   `help:"Variable holding the manifest in variable format." name:"var-name"`
	Indent       int      `help:"Indent the manifest by this many spaces." default:"-1"`
	NoMinify     bool     `help:"Do not minify Python sources." name:"no-minify"`
	NoHeaders    bool     `help:"Do not keep shebang and coding lines." name:"no-headers"`
	MinifyAssets bool     `help:"Minify JavaScript and CSS files." name:"minify-assets"`
	Extensions   string   `help:"Comma separated extensions to package."`
	AddExtension []string `help:"Add an extension to package. Repeatable." name:"add-extension"`
}

func (c *PaketizeCmd) Run(log zerolog.Logger, cfg *frontend.Config) error {
	store, closeCache := openCache(cfg, log)
	defer closeCache()

	exts := slices.Concat(extensions(c.Extensions, cfg), paket.ParseExtensions(strings.Join(c.AddExtension, ",")))
	log.Debug().Strs("extensions", exts).Msg("packaging extensions")

	p := paket.New(paket.Options{
		Extensions:   exts,
		Minify:       cfg.Paket.Minify && !c.NoMinify,
		KeepHeaders:  cfg.Paket.KeepHeaders && !c.NoHeaders,
		MinifyAssets: cfg.Paket.MinifyAssets || c.MinifyAssets,
		Cache:        store,
	}, log)

	log.Info().Str("dir", c.Dir).Msg("packaging")
	m, err := p.Dir(c.Dir)
	if err != nil {
		return err
	}

	format, err := vfs.ParseFormat(or(c.Format, cfg.Paket.Format))
	if err != nil {
		return err
	}
	out := c.Outfile
	if out == "" {
		out = m.Base + format.Suffix()
	}

	indent := c.Indent
	if indent < 0 {
		indent = cfg.Paket.Indent
	}
	data, err := vfs.Encode(m, format, vfs.EncodeOptions{
		Variable: or(c.VarName, cfg.Paket.Variable),
		VfsPath:  loadPath(out),
		Indent:   indent,
	})
	if err != nil {
		return err
	}

	log.Info().Str("file", out).Str("format", format.String()).Int("entries", m.Len()).Msg("writing package")
	return os.WriteFile(out, data, 0o644)
}

// loadPath derives the load path an autoload package registers from its
// file name: app.auto_vfs.js and app both register app.vfs.js.
func loadPath(out string) string {
	name := filepath.Base(out)
	if strings.HasSuffix(name, vfs.SuffixVariable) {
		return name
	}
	name = strings.TrimSuffix(name, vfs.SuffixAutoload)
	return name + vfs.SuffixVariable
}
