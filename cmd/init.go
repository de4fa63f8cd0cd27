package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/anpylar/anpylar/backend"
	"github.com/anpylar/anpylar/frontend"
	"github.com/anpylar/anpylar/project"
	"github.com/rs/zerolog"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <title>%s</title>

  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">

  <link rel="stylesheet" href="styles.css">
  <script src="anpylar.js" %s></script>

</head>
<body></body>
</html>
`

type InitCmd struct {
	Name    string `arg:"" help:"Application directory to create."`
	Package string `help:"Package of the application (default: the directory name)."`
	Title   string `help:"Page title (default: the directory name)."`
	NoAsync bool   `help:"Load the bundle synchronously." name:"no-async"`

	AppName     string `help:"Application name for package.json." name:"app-name"`
	AppVersion  string `help:"Application version for package.json." name:"app-version" default:"0.0.1"`
	AppAuthor   string `help:"Author for package.json." name:"app-author"`
	AppEmail    string `help:"Author e-mail for package.json." name:"app-email"`
	AppLicense  string `help:"License for package.json." name:"app-license"`
	AppURL      string `help:"Application URL for package.json." name:"app-url"`
	NoPkgJSON   bool   `help:"Do not write package.json." name:"no-package-json"`
	NoAnpylarJS bool   `help:"Do not write the bundle." name:"no-anpylar-js"`
}

func (c *InitCmd) Run(log zerolog.Logger) error {
	if _, err := os.Stat(c.Name); err == nil {
		return fmt.Errorf("%s: %w", c.Name, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	base := filepath.Base(c.Name)
	pkg := or(c.Package, base)

	if err := os.MkdirAll(c.Name, 0755); err != nil {
		return err
	}

	async := "async"
	if c.NoAsync {
		async = ""
	}
	index := fmt.Sprintf(indexHTML, or(c.Title, base), async)
	if err := os.WriteFile(filepath.Join(c.Name, "index.html"), []byte(index), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.Name, "styles.css"), nil, 0644); err != nil {
		return err
	}

	// anpylar.toml
	f, err := os.Create(filepath.Join(c.Name, frontend.ConfigFile))
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(frontend.DefaultConfig()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !c.NoPkgJSON {
		if err := c.writePackageJSON(pkg); err != nil {
			return err
		}
	}

	if !c.NoAnpylarJS {
		b, err := backend.New(backend.Config{Anpylarize: true, Debug: true}, log)
		if err != nil {
			return err
		}
		if err := b.Write(filepath.Join(c.Name, backend.BundleFile), backend.WriteOptions{}); err != nil {
			return err
		}
	}

	log.Info().Str("dir", c.Name).Str("package", pkg).Msg("application created")
	return nil
}

func (c *InitCmd) writePackageJSON(pkg string) error {
	pjson := project.New()
	pjson.AddPackages(pkg)
	for _, kv := range []struct{ key, value string }{
		{"app_name", c.AppName},
		{"version", c.AppVersion},
		{"author", c.AppAuthor},
		{"author_email", c.AppEmail},
		{"license", c.AppLicense},
		{"url", c.AppURL},
	} {
		if err := pjson.SetField(kv.key, kv.value); err != nil {
			return err
		}
	}
	return pjson.Save(filepath.Join(c.Name, backend.PackageJSON))
}
