package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthrough(t *testing.T) {
	src := `{
  "app_name": "demo",
  "packages": ["app"],
  "version": "1.0",
  "extra": {"nested": [1, 2]}
}`
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"app_name", "packages", "version", "extra"}, f.Keys())
	assert.Equal(t, []string{"app"}, f.Packages())

	f.AddPackages("lib", "app")
	out, err := f.MarshalJSON()
	require.NoError(t, err)

	want := `{
    "app_name": "demo",
    "packages": [
        "app",
        "lib"
    ],
    "version": "1.0",
    "extra": {
        "nested": [
            1,
            2
        ]
    }
}`
	assert.Equal(t, want, string(out))
}

func TestNew(t *testing.T) {
	f := New()
	assert.Empty(t, f.Packages())
	assert.Equal(t, "", f.PkgDir())

	out, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"packages\": []\n}", string(out))
}

func TestSetPkgDir(t *testing.T) {
	f := New()
	assert.True(t, f.SetPkgDir("vendor/pkgs/", false))
	assert.Equal(t, "vendor/pkgs", f.PkgDir())

	assert.False(t, f.SetPkgDir("other", false))
	assert.Equal(t, "vendor/pkgs", f.PkgDir())

	assert.True(t, f.SetPkgDir("other", true))
	assert.Equal(t, "other", f.PkgDir())
	assert.Equal(t, []string{"packages", "pkgdir"}, f.Keys())
}

func TestReadOnlyFields(t *testing.T) {
	f, err := Parse([]byte(`{"debug": true, "data": ["static", "index.html"]}`))
	require.NoError(t, err)
	assert.True(t, f.Debug())

	data, ok := f.Data()
	assert.True(t, ok)
	assert.Equal(t, []string{"static", "index.html"}, data)

	f, err = Parse([]byte(`{"debug": "yes"}`))
	require.NoError(t, err)
	assert.False(t, f.Debug())
	_, ok = f.Data()
	assert.False(t, ok)
}

func TestInvalid(t *testing.T) {
	for _, src := range []string{
		``,
		`[]`,
		`{"packages": "app"}`,
		`{"pkgdir": 3}`,
		`{"packages": []`,
		`{} {}`,
	} {
		_, err := Parse([]byte(src))
		assert.ErrorIs(t, err, ErrInvalidFormat, src)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"url": "x", "packages": []}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	f.AddPackages("./app/")
	require.NoError(t, f.Save(path))

	f, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "packages"}, f.Keys())
	assert.Equal(t, []string{"app"}, f.Packages())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetField(t *testing.T) {
	f := New()
	require.NoError(t, f.SetField("app_name", "demo"))
	require.NoError(t, f.SetField("app_name", "other"))
	assert.Equal(t, []string{"packages", "app_name"}, f.Keys())

	raw, ok := f.Field("app_name")
	assert.True(t, ok)
	assert.JSONEq(t, `"other"`, string(raw))

	assert.Error(t, f.SetField("bad", func() {}))
}
