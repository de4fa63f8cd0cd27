package imports

import (
	"testing"

	"github.com/anpylar/anpylar/frontend/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	src := "import os.path, json\nx = 1\nif x: from . import util\nfrom .. import up\nfrom ...far import y\n"
	tokens, err := lexer.Tokenize("app/sub/__init__.py", src)
	require.NoError(t, err)

	stmts := Statements(tokens, "app.sub")
	require.Len(t, stmts, 4)

	assert.Equal(t, []string{"json", "os.path"}, stmts[0].Modules)
	assert.False(t, stmts[0].Relative)
	assert.Equal(t, uint32(1), stmts[0].Span.LineStart)
	assert.Equal(t, uint32(1), stmts[0].Span.ColumnStart)

	assert.Equal(t, []string{"app.sub.util"}, stmts[1].Modules)
	assert.True(t, stmts[1].Relative)
	assert.Equal(t, uint32(3), stmts[1].Span.LineStart)
	assert.Equal(t, uint32(7), stmts[1].Span.ColumnStart)

	assert.Equal(t, []string{"app.up"}, stmts[2].Modules)
	assert.True(t, stmts[3].Relative)
	assert.Empty(t, stmts[3].Modules)
}

func TestLeaves(t *testing.T) {
	assert.Equal(t, []string{"a.b.c", "d"}, leaves([]string{"a", "a.b", "a.b.c", "d"}))
	assert.Empty(t, leaves(nil))
}
