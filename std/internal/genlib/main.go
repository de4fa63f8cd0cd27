// Command genlib renders a standard library source tree into the library
// form artifact embedded by package std.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/anpylar/anpylar/common"
	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
)

type CLI struct {
	Lib    string `arg:"" help:"Standard library source tree." type:"existingdir"`
	Output string `help:"Output file." short:"o" required:"" type:"path"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Name("genlib"))
	log := common.NewLogger(common.LoggerOptions{})
	ctx.FatalIfErrorf(render(cli.Lib, cli.Output, log))
}

// render packages lib without minification. Top level files of lib become
// top level modules.
func render(lib, output string, log zerolog.Logger) error {
	p := paket.New(paket.Options{Extensions: []string{vfs.ExtPython}}, log)
	m, err := p.FS(os.DirFS(lib), ".", "")
	if err != nil {
		return err
	}
	data, err := vfs.Encode(m, vfs.FormatLibrary, vfs.EncodeOptions{})
	if err != nil {
		return err
	}
	data = append(data, ";\n"...)
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", output).Int("modules", m.Len()).Msg("rendered standard library")
	return nil
}
