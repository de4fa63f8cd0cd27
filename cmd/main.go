package main

import (
	"github.com/alecthomas/kong"
	"github.com/anpylar/anpylar/common"
	"github.com/anpylar/anpylar/frontend"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("anpylar"),
		kong.Description("Package, bundle and ship Python web applications."),
		kong.UsageOnError(),
	)

	log := common.NewLogger(common.LoggerOptions{
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		JSON:    cli.LogJSON,
	})

	path := cli.Config
	if path == "" {
		path = frontend.ConfigFile
	}
	cfg, err := frontend.LoadConfig(path, cli.Config != "")
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals, log, &cfg)
	ctx.FatalIfErrorf(err)
}

type Globals struct {
	Quiet   bool   `help:"Report errors only." short:"q" xor:"verbosity"`
	Verbose bool   `help:"Report debug output." short:"v" xor:"verbosity"`
	LogJSON bool   `help:"Log as JSON lines." name:"log-json"`
	Config  string `help:"Configuration file (default: ./anpylar.toml if present)." type:"path"`
}

type CLI struct {
	Globals

	Bundle   BundleCmd   `cmd:"" help:"Create a bundle."`
	Paketize PaketizeCmd `cmd:"" help:"Package a directory into a manifest file."`
	Webpack  WebpackCmd  `cmd:"" help:"Bundle an application and prepare its distribution."`
	Imports  ImportsCmd  `cmd:"" help:"List the modules a package imports."`
	Check    CheckCmd    `cmd:"" help:"Check Python sources for syntax errors."`
	Init     InitCmd     `cmd:"" help:"Create a new application." aliases:"new"`
	Add      AddCmd      `cmd:"" help:"Add packages to package.json."`
	Lsp      LspCmd      `cmd:"" help:"Run the LSP server."`
	Version  VersionCmd  `cmd:"" help:"Show version."`
}
