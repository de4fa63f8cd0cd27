package minify

import (
	"testing"

	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMinify(t *testing.T, src string, opts ...Option) string {
	t.Helper()
	out, err := Minify(src, opts...)
	require.NoError(t, err)
	return out
}

func TestMinifyIndentationAndSpacing(t *testing.T) {
	src := `
import os


def join( a , b = 1 ):
    if a  is  not None :
        return os.path.join( a , str( b ) )
    return  None
`
	want := "import os\ndef join(a,b=1):\n if a is not None:\n  return os.path.join(a,str(b))\n return None\n"
	assert.Equal(t, want, mustMinify(t, src))
}

func TestMinifyDropsComments(t *testing.T) {
	src := "x = 1  # one\n# alone\ny = 2\n"
	assert.Equal(t, "x=1\ny=2\n", mustMinify(t, src))
}

func TestMinifyKeepsHeaders(t *testing.T) {
	src := "#!/usr/bin/env python\n# -*- coding: utf-8 -*-\n# copyright\nx = 1\n"
	assert.Equal(t, "#!/usr/bin/env python\n# -*- coding: utf-8 -*-\nx=1\n", mustMinify(t, src))
	assert.Equal(t, "x=1\n", mustMinify(t, src, KeepHeaders(false)))
}

func TestMinifyHeaderRequiresPosition(t *testing.T) {
	// a coding declaration after code, or on line three, is an ordinary comment
	assert.Equal(t, "x=1\n", mustMinify(t, "x = 1\n# coding: latin-1\n"))
	assert.Equal(t, "x=1\n", mustMinify(t, "\n\n# coding: latin-1\nx = 1\n"))
}

func TestMinifyDocstrings(t *testing.T) {
	src := `"""Module docstring."""
class A:
    """Class docstring."""
    x = 1

def f():
    """Only the docstring."""

def g():
    '''doc'''
    """more"""
    return 1
`
	want := "class A:\n x=1\ndef f():\n ''\ndef g():\n return 1\n"
	assert.Equal(t, want, mustMinify(t, src))
}

func TestMinifyKeepsFormattedStringStatements(t *testing.T) {
	src := `def f():
    """doc"""
    f'{log()}'
    return 1
`
	assert.Equal(t, "def f():\n f'{log()}'\n return 1\n", mustMinify(t, src))
	assert.Equal(t, "x=1\nRT'{y}'\n", mustMinify(t, "x = 1\nRT'{y}'\n"))
}

func TestMinifyKeepsStringsInExpressions(t *testing.T) {
	src := "\"-\".join(parts)\n'%s' % x\n"
	assert.Equal(t, "\"-\".join(parts)\n'%s'%x\n", mustMinify(t, src))
}

func TestMinifyJoinsBracketsAndContinuations(t *testing.T) {
	src := "x = [1,\n     2,\n]\ny = 1 + \\\n    2\n"
	assert.Equal(t, "x=[1,2,]\ny=1+2\n", mustMinify(t, src))
}

func TestMinifyPreservesMultilineStrings(t *testing.T) {
	src := "s = '''a\n\n  b'''\n"
	assert.Equal(t, "s='''a\n\n  b'''\n", mustMinify(t, src))
}

func TestMinifySpacing(t *testing.T) {
	cases := map[string]string{
		"x = 1 .real":           "x=1 .real",
		"return f'{x}'":         "return f'{x}'",
		"y = b 'raw'":           "y=b 'raw'",
		"y = x 'str'":           "y=x'str'",
		"s = 'a' 'b'":           "s='a' 'b'",
		"f(* *x)":               "f(* *x)",
		"a = b - -c":            "a=b--c",
		"a = x if y else-1":     "a=x if y else-1",
		"lambda *args: 0":       "lambda*args:0",
		"from . import x":       "from. import x",
		"from .. import y":      "from. . import y",
		"print(x[::2], x[:-1])": "print(x[::2],x[:-1])",
		"z = 1if x else 2":      "z=1 if x else 2",
	}
	for src, want := range cases {
		assert.Equal(t, want+"\n", mustMinify(t, src), src)
	}
	assert.Equal(t, "@decorator\ndef f():...\n", mustMinify(t, "@decorator\ndef f(): ..."))
}

func TestMinifySyntaxError(t *testing.T) {
	_, err := Minify("x = (1,\n", Filename("bad.py"))
	var syntaxErr *lexer.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "bad.py", syntaxErr.File)
}

func TestMinifyEmpty(t *testing.T) {
	assert.Equal(t, "", mustMinify(t, ""))
	assert.Equal(t, "", mustMinify(t, "# only a comment\n\n"))
	assert.Equal(t, "", mustMinify(t, "'''just a docstring'''\n"))
}

func TestMinifyIdempotent(t *testing.T) {
	sources := []string{
		"#!/usr/bin/env python\n# coding: utf-8\n'''doc'''\nimport os\n",
		"''\n''\nx = 1\n",
		"def f():\n    'a'\n    'b'\n\nclass C:\n    '''doc'''\n    def m(self): return self\n",
		"x = {'a': [1, 2,\n  3], **y}\nprint(x  ,  end = '')\n",
		"if a:\n\tpass\nelif b:  # why\n        pass\nelse:\n  ...\n",
		"from .. import a\nfrom .mod import (b,\n    c)\nv = 1.5e-3j + 0x_ff\n",
		"async def run():\n    await x\n    return [i async for i in y]\n",
		"s = r'\\d' + u'x' + rb\"y\"\ntext = '''\n  keep\n'''\n",
		"x = 1 .real\nfor i in range(3): print(i); continue\n",
	}
	for _, src := range sources {
		once := mustMinify(t, src)
		twice := mustMinify(t, once)
		assert.Equal(t, once, twice, src)
		assert.LessOrEqual(t, len(once), len(src), src)
	}
}
