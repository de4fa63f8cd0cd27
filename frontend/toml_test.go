package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAnpylarToml(t *testing.T) {
	cfg, err := HandleAnpylarToml(`
[bundle]
output = "dist/app.js"
optimize = true

[paket]
extensions = [".py"]
indent = 4
`)
	require.NoError(t, err)
	assert.Equal(t, "dist/app.js", cfg.Bundle.Output)
	assert.True(t, cfg.Bundle.Optimize)
	assert.True(t, cfg.Bundle.Anpylarize)
	assert.Equal(t, []string{".py"}, cfg.Paket.Extensions)
	assert.Equal(t, 4, cfg.Paket.Indent)
	assert.True(t, cfg.Paket.Minify)
	assert.Equal(t, "autoload", cfg.Paket.Format)
	assert.True(t, cfg.Cache.Enabled)
}

func TestHandleAnpylarTomlEmpty(t *testing.T) {
	cfg, err := HandleAnpylarToml("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestHandleAnpylarTomlUnknown(t *testing.T) {
	_, err := HandleAnpylarToml("[bundle]\noutptu = \"x.js\"\n")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.ErrorContains(t, err, "bundle.outptu")

	_, err = HandleAnpylarToml("[server]\nport = 8000\n")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestHandleAnpylarTomlInvalid(t *testing.T) {
	for _, src := range []string{
		"[paket]\nformat = \"library\"\n",
		"[paket]\nextensions = [\"py\"]\n",
		"[paket]\nindent = 12\n",
		"[bundle]\noutput = \"\"\n",
		"[bundle\n",
		"[bundle]\ndebug = \"yes\"\n",
	} {
		_, err := HandleAnpylarToml(src)
		assert.Error(t, err, src)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, ConfigFile)

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(missing, []byte("[cache]\nenabled = false\nbogus = 1\n"), 0o644))
	_, err = LoadConfig(missing, false)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.ErrorContains(t, err, ConfigFile)
}
