package imports

import (
	"testing"

	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, pkg, src string) []string {
	t.Helper()
	f := NewFinder()
	f.SetPackage(pkg)
	require.NoError(t, f.Scan("test.py", src))
	return f.Imports()
}

func TestImportPrefixes(t *testing.T) {
	assert.Equal(t, []string{"a", "a.b", "a.b.c"}, scan(t, "", "import a.b.c\n"))
	assert.Equal(t, []string{"a", "d", "d.e"}, scan(t, "", "import a as x, d.e\n"))
}

func TestImportFrom(t *testing.T) {
	assert.Equal(t, []string{"a", "a.b", "a.b.c", "a.b.d"}, scan(t, "", "from a.b import c, d as e\n"))
	assert.Equal(t, []string{"a", "a.b", "a.c"}, scan(t, "", "from a import (b,\n    c,\n)\n"))
}

func TestImportFromWildcard(t *testing.T) {
	assert.Equal(t, []string{"a", "a.b"}, scan(t, "", "from a.b import *\n"))
}

func TestRelativeImports(t *testing.T) {
	assert.Equal(t, []string{"p", "p.q", "p.q.x"}, scan(t, "p.q", "from . import x\n"))
	assert.Equal(t, []string{"p", "p.q", "p.q.m", "p.q.m.y"}, scan(t, "p.q", "from .m import y\n"))
	assert.Equal(t, []string{"p", "p.m", "p.m.y"}, scan(t, "p.q", "from ..m import y\n"))
	assert.Equal(t, []string{"p", "p.q"}, scan(t, "p.q", "from . import *\n"))
	// beyond the top level package
	assert.Empty(t, scan(t, "p.q", "from ... import z\n"))
	// no context: relative imports are skipped, absolute ones kept
	assert.Equal(t, []string{"os"}, scan(t, "", "from . import x\nfrom ..m import y\nimport os\n"))
}

func TestStatementStarts(t *testing.T) {
	src := `
if x: import os; import re
def f():
    import json
    return (yield from g())
raise E from err
s = "import sys"
v = mod.import_thing
# import glob
`
	assert.Equal(t, []string{"json", "os", "re"}, scan(t, "", src))
}

func TestScanSyntaxError(t *testing.T) {
	err := NewFinder().Scan("broken.py", "import (\n")
	var syntaxErr *lexer.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestFinderAccumulates(t *testing.T) {
	f := NewFinder()
	require.NoError(t, f.Scan("a.py", "import os\n"))
	require.NoError(t, f.Scan("b.py", "import re\n"))
	assert.Len(t, f.Set(), 2)
}
