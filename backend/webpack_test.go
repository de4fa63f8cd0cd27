package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webapp(t *testing.T, pjson string) (string, Config) {
	t.Helper()
	_, cfg := fixture(t)
	target := t.TempDir()
	writeTree(t, target, map[string]string{
		PackageJSON:         pjson,
		"app/__init__.py":   "",
		"app/main.py":       "import os.path\n",
		"index.html":        "<html></html>",
		"static/site.css":   "body {}",
		"vendor/lib.vfs.js": `var $vfs = {"lib":[".py","import json"]}`,
	})
	return target, cfg
}

func TestWebpack(t *testing.T) {
	target, cfg := webapp(t, `{"packages": ["app", "vendor"]}`)

	err := Webpack(WebpackOptions{Target: target, Bundle: cfg}, zerolog.Nop())
	require.NoError(t, err)

	bundle, err := os.ReadFile(filepath.Join(target, BundleFile))
	require.NoError(t, err)
	assert.Contains(t, string(bundle), `"app.main":[".py","import os.path\n"]`)
	assert.Contains(t, string(bundle), `var vfspath = "lib.vfs.js"`)
	assert.Contains(t, string(bundle), `"os.path":[".py","import os"]`)
	assert.Contains(t, string(bundle), `"re":[".py",""]`)
	assert.NotContains(t, string(bundle), "brython(1)")

	dist := filepath.Join(target, DistDir)
	assert.FileExists(t, filepath.Join(dist, "index.html"))
	assert.FileExists(t, filepath.Join(dist, "static", "site.css"))
	assert.FileExists(t, filepath.Join(dist, BundleFile))
	assert.NoDirExists(t, filepath.Join(dist, "app"))
	assert.NoDirExists(t, filepath.Join(dist, "vendor"))
	assert.NoDirExists(t, filepath.Join(dist, DistDir))

	err = Webpack(WebpackOptions{Target: target, Bundle: cfg, NoOverwrite: true}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrDistExists)

	require.NoError(t, Webpack(WebpackOptions{Target: target, Bundle: cfg}, zerolog.Nop()))
	assert.FileExists(t, filepath.Join(dist, "index.html"))
}

func TestWebpackData(t *testing.T) {
	target, cfg := webapp(t, `{"packages": ["app"], "debug": true, "data": ["static", "missing"]}`)
	dist := filepath.Join(t.TempDir(), "out")

	err := Webpack(WebpackOptions{Target: target, Dist: dist, Bundle: cfg, NoOptimize: true}, zerolog.Nop())
	require.NoError(t, err)

	bundle, err := os.ReadFile(filepath.Join(target, BundleFile))
	require.NoError(t, err)
	assert.Contains(t, string(bundle), "brython(1)")
	assert.Contains(t, string(bundle), `"json":[".py","import re"]`)

	assert.FileExists(t, filepath.Join(dist, "static", "site.css"))
	assert.NoFileExists(t, filepath.Join(dist, "index.html"))
}

func TestWebpackOnlyBundle(t *testing.T) {
	target, cfg := webapp(t, `{"packages": ["app"]}`)

	err := Webpack(WebpackOptions{
		Target:        target,
		Bundle:        cfg,
		OnlyBundle:    true,
		NoPackageJSON: true,
		Packages:      []string{"vendor/lib.vfs.js"},
	}, zerolog.Nop())
	require.NoError(t, err)

	bundle, err := os.ReadFile(filepath.Join(target, BundleFile))
	require.NoError(t, err)
	assert.Contains(t, string(bundle), `var vfspath = "lib.vfs.js"`)
	assert.NotContains(t, string(bundle), `"app.main"`)
	assert.NoDirExists(t, filepath.Join(target, DistDir))
}

func TestWebpackUnknownKind(t *testing.T) {
	target, cfg := webapp(t, `{"packages": ["index.html"]}`)

	err := Webpack(WebpackOptions{Target: target, Bundle: cfg}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownPackageKind)
	assert.NoFileExists(t, filepath.Join(target, BundleFile))
}

func TestWebpackMissing(t *testing.T) {
	target, cfg := webapp(t, `{"packages": ["nope"]}`)
	err := Webpack(WebpackOptions{Target: target, Bundle: cfg}, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = Webpack(WebpackOptions{Target: target, Bundle: cfg, Packages: []string{"gone"}, NoPackageJSON: true}, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	target, cfg = webapp(t, `{"packages": "app"}`)
	err = Webpack(WebpackOptions{Target: target, Bundle: cfg}, zerolog.Nop())
	assert.Error(t, err)
}

func TestAddArtifact(t *testing.T) {
	dir, cfg := fixture(t)
	writeTree(t, dir, map[string]string{
		"raw.vfs.json":     `{"raw":[".py","import json"]}`,
		"var.vfs.js":       `var $vfs = {"var":[".py",""]}`,
		"auto.auto_vfs.js": "\n;(function() {\n    var vfspath = \"auto.vfs.js\"\n    var $vfs = {\"auto\": [\".py\", \"\", 1]}\n})()\n",
		"notes.js":         "",
	})

	b := newBundler(t, cfg)
	for _, name := range []string{"raw.vfs.json", "var.vfs.js", "auto.auto_vfs.js"} {
		require.NoError(t, addArtifact(b, filepath.Join(dir, name)), name)
	}
	assert.Equal(t, []string{"raw", "var", "auto"}, b.Packages())

	err := addArtifact(b, filepath.Join(dir, "notes.js"))
	assert.ErrorIs(t, err, ErrUnknownPackageKind)
}
