package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gluax-lang/lsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestModuleOf(t *testing.T) {
	root := tree(t, map[string]string{
		"app/__init__.py":     "",
		"app/main.py":         "",
		"app/sub/__init__.py": "",
		"app/sub/util.py":     "",
		"script.py":           "",
	})

	m := moduleOf(filepath.Join(root, "app", "sub", "util.py"))
	assert.Equal(t, module{Name: "app.sub.util", Package: "app.sub", Root: root}, m)

	m = moduleOf(filepath.Join(root, "app", "sub", "__init__.py"))
	assert.Equal(t, module{Name: "app.sub", Package: "app.sub", Root: root}, m)

	m = moduleOf(filepath.Join(root, "script.py"))
	assert.Equal(t, module{Name: "script", Root: root}, m)
}

func TestResolve(t *testing.T) {
	root := tree(t, map[string]string{
		"app/__init__.py":     "",
		"app/main.py":         "",
		"app/sub/__init__.py": "",
	})

	path, ok := resolve("app.main", "", root)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "app", "main.py"), path)

	path, ok = resolve("app.sub", root)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "app", "sub", "__init__.py"), path)

	_, ok = resolve("app.gone", root)
	assert.False(t, ok)
}

func TestAnalyze(t *testing.T) {
	root := tree(t, map[string]string{
		"app/__init__.py": "",
		"app/main.py":     "",
	})
	path := filepath.Join(root, "app", "main.py")

	a := analyze(path, "from . import util\nfrom ... import far\nimport os.path\n")
	require.Len(t, a.stmts, 3)
	assert.Equal(t, []string{"app.util"}, a.stmts[0].Modules)
	require.Len(t, a.diags, 1)
	assert.Equal(t, "relative import beyond top-level package", a.diags[0].Message)
	assert.Equal(t, uint32(1), a.diags[0].Range.Start.Line)

	stmt := a.statementAt(lsp.Position{Line: 2, Character: 9})
	require.NotNil(t, stmt)
	assert.Equal(t, []string{"os.path"}, stmt.Modules)
	assert.Nil(t, a.statementAt(lsp.Position{Line: 5}))

	assert.Len(t, a.importsOf("os"), 1)
	assert.Empty(t, a.importsOf("o"))

	a = analyze(path, "x = (\n")
	assert.Empty(t, a.stmts)
	require.Len(t, a.diags, 1)

	a = analyze(filepath.Join(root, "top.py"), "from . import x\n")
	require.Len(t, a.diags, 1)
	assert.Equal(t, "relative import outside of a package", a.diags[0].Message)
}

func TestImportPrefix(t *testing.T) {
	for line, want := range map[string]string{
		"import ":      "",
		"import o":     "",
		"from os.":     "os.",
		"  import a.b": "a.",
	} {
		prefix, ok := importPrefix(line)
		assert.True(t, ok, line)
		assert.Equal(t, want, prefix, line)
	}
	for _, line := range []string{"x = 1", "import", "from .x", "from os import p", ""} {
		_, ok := importPrefix(line)
		assert.False(t, ok, line)
	}
}

func TestLineBefore(t *testing.T) {
	text := "a = 1\nimport ñu\n"
	assert.Equal(t, "import ñ", lineBefore(text, lsp.Position{Line: 1, Character: 8}))
	assert.Equal(t, "import ñu", lineBefore(text, lsp.Position{Line: 1, Character: 40}))
	assert.Equal(t, "", lineBefore(text, lsp.Position{Line: 9}))
}
