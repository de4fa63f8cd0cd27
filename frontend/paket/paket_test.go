package paket

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/anpylar/anpylar/cache"
	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/anpylar/anpylar/vfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func appTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "app")
	writeTree(t, root, map[string]string{
		"__init__.py":         "'''App.'''\nfrom . import main\n",
		"main.py":             "from .sub import mod\n\n\nprint( mod.VALUE )\n",
		"sub/__init__.py":     "",
		"sub/mod.py":          "VALUE = 1  # one\n",
		"static/site.css":     "body { color: red; }\n",
		"index.html":          "<html></html>\n",
		"lib.js":              "var $module = {}\n",
		"README.md":           "# not packaged\n",
		"__pycache__/main.py": "stale = True\n",
		".git/hooks.py":       "hidden = True\n",
	})
	return root
}

func TestDirNaming(t *testing.T) {
	m, err := New(Options{}, zerolog.Nop()).Dir(appTree(t))
	require.NoError(t, err)

	assert.Equal(t, "app", m.Base)
	assert.Equal(t, []string{
		"app",
		"app/index.html",
		"app.lib",
		"app.main",
		"app/static/site.css",
		"app.sub",
		"app.sub.mod",
	}, m.Names())

	e, _ := m.Get("app")
	assert.True(t, e.Package)
	assert.Equal(t, vfs.ExtPython, e.Ext)

	e, _ = m.Get("app.sub")
	assert.True(t, e.Package)

	e, _ = m.Get("app.main")
	assert.False(t, e.Package)
	assert.Equal(t, "from .sub import mod\n\n\nprint( mod.VALUE )\n", e.Content)

	e, _ = m.Get("app/static/site.css")
	assert.Equal(t, vfs.ExtCSS, e.Ext)
	assert.Equal(t, vfs.KindStyle, e.Kind())
}

func TestDirExtensions(t *testing.T) {
	m, err := New(Options{Extensions: ParseExtensions("py, MD")}, zerolog.Nop()).Dir(appTree(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"app/README.md", "app", "app.main", "app.sub", "app.sub.mod"}, m.Names())
}

func TestDirRoundTrip(t *testing.T) {
	root := appTree(t)
	m, err := New(Options{}, zerolog.Nop()).Dir(root)
	require.NoError(t, err)

	out, err := vfs.Encode(m, vfs.FormatAutoload, vfs.EncodeOptions{})
	require.NoError(t, err)
	doc, err := vfs.Decode(out, vfs.FormatAutoload)
	require.NoError(t, err)

	assert.Equal(t, m.Names(), doc.Manifest.Names())
	for name, e := range m.All() {
		got, _ := doc.Manifest.Get(name)
		assert.Equal(t, e.Content, got.Content, name)
		assert.Equal(t, e.Package, got.Package, name)
	}

	data, err := os.ReadFile(filepath.Join(root, "main.py"))
	require.NoError(t, err)
	e, _ := doc.Manifest.Get("app.main")
	assert.Equal(t, string(data), e.Content)
}

func TestDirMinifyUsesCache(t *testing.T) {
	store, err := cache.NewBadger(cache.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	p := New(Options{Minify: true, KeepHeaders: true, Cache: store}, zerolog.Nop())
	m, err := p.Dir(appTree(t))
	require.NoError(t, err)

	e, _ := m.Get("app")
	assert.Equal(t, "from. import main\n", e.Content)
	e, _ = m.Get("app.sub.mod")
	assert.Equal(t, "VALUE=1\n", e.Content)

	cached, err := store.Get(cache.MinifyKey("VALUE = 1  # one\n", true))
	require.NoError(t, err)
	assert.Equal(t, "VALUE=1\n", string(cached))

	// assets are left alone unless asked for
	e, _ = m.Get("app/static/site.css")
	assert.Equal(t, "body { color: red; }\n", e.Content)
}

func TestDirMinifyAssets(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ui")
	writeTree(t, root, map[string]string{
		"widget.js": "function add ( a , b ) {\n    return a + b ;\n}\n",
		"theme.css": "body {\n    color : red ;\n}\n",
	})
	m, err := New(Options{MinifyAssets: true}, zerolog.Nop()).Dir(root)
	require.NoError(t, err)

	e, _ := m.Get("ui.widget")
	assert.Contains(t, e.Content, "return a+b")
	e, _ = m.Get("ui/theme.css")
	assert.Contains(t, e.Content, "color:red")
}

func TestDirMinifyAssetsError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ui")
	writeTree(t, root, map[string]string{"broken.js": "function ( {\n"})
	_, err := New(Options{MinifyAssets: true}, zerolog.Nop()).Dir(root)
	require.ErrorIs(t, err, ErrAssetMinify)
}

func TestDirSyntaxError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bad")
	writeTree(t, root, map[string]string{"mod.py": "x = (1,\n"})

	_, err := New(Options{Minify: true}, zerolog.Nop()).Dir(root)
	var syntaxErr *lexer.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "mod.py", syntaxErr.File)

	// without minification the source is stored as is
	m, err := New(Options{}, zerolog.Nop()).Dir(root)
	require.NoError(t, err)
	assert.True(t, m.Has("bad.mod"))
}

func TestDirNameCollision(t *testing.T) {
	root := filepath.Join(t.TempDir(), "app")
	writeTree(t, root, map[string]string{"x.py": "", "x.js": ""})
	_, err := New(Options{}, zerolog.Nop()).Dir(root)
	require.ErrorIs(t, err, ErrNameCollision)
}

func TestDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.py")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(Options{}, zerolog.Nop()).Dir(file)
	require.ErrorIs(t, err, ErrNotDir)

	_, err = New(Options{}, zerolog.Nop()).Dir(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirDecodesDeclaredEncoding(t *testing.T) {
	root := filepath.Join(t.TempDir(), "enc")
	src := append([]byte("# -*- coding: latin-1 -*-\nNAME = '"), 0xE9, '\'', '\n')
	writeTree(t, root, map[string]string{"names.py": string(src)})

	m, err := New(Options{}, zerolog.Nop()).Dir(root)
	require.NoError(t, err)
	e, _ := m.Get("enc.names")
	assert.True(t, strings.HasSuffix(e.Content, "NAME = 'é'\n"))
}

func TestFSWithoutBase(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/os.py":            {Data: []byte("import posixpath as path\n")},
		"lib/json/__init__.py": {Data: []byte("from .decoder import JSONDecoder\n")},
		"lib/json/decoder.py":  {Data: []byte("")},
		"lib/__init__.py":      {Data: []byte("")},
		"lib/site.css":         {Data: []byte("")},
	}
	m, err := New(Options{}, zerolog.Nop()).FS(fsys, "lib", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "json.decoder", "os", "site.css"}, m.Names())

	e, _ := m.Get("json")
	assert.True(t, e.Package)
}

func TestBaseName(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	base, err := BaseName(".")
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(wd), base)

	base, err = BaseName("some/dir/pkg/")
	require.NoError(t, err)
	assert.Equal(t, "pkg", base)
}

func TestEntryName(t *testing.T) {
	cases := []struct {
		base, rel, ext string
		name           string
		pkg            bool
	}{
		{"app", "__init__.py", ".py", "app", true},
		{"app", "a/b/__init__.py", ".py", "app.a.b", true},
		{"app", "a/mod.py", ".py", "app.a.mod", false},
		{"app", "a/lib.js", ".js", "app.a.lib", false},
		{"app", "a/b/img.png", ".png", "app/a/b/img.png", false},
		{"", "re.py", ".py", "re", false},
		{"", "__init__.py", ".py", "", true},
	}
	for _, c := range cases {
		name, pkg := entryName(c.base, c.rel, c.ext)
		assert.Equal(t, c.name, name, c.rel)
		assert.Equal(t, c.pkg, pkg, c.rel)
	}
}
