// Package std carries the default assets of a bundle: the interpreter
// runtime, the loader shim, the standard library in library form and the
// framework package. The framework is packaged on demand.
package std

import (
	"embed"

	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/vfs"
)

//go:generate go run ./internal/genlib -o data/brython_stdlib.js lib

//go:embed data all:anpylar
var FS embed.FS

const (
	RuntimeFile  = "data/brython.js"
	ShimFile     = "data/anpylar_js.js"
	StdlibFile   = "data/brython_stdlib.js"
	FrameworkDir = "anpylar"

	// FrameworkName is the package name of the framework.
	FrameworkName = "anpylar"
)

func mustRead(name string) string {
	data, err := FS.ReadFile(name)
	if err != nil { // embedded, cannot fail
		panic(err)
	}
	return string(data)
}

// Runtime returns the default interpreter runtime.
func Runtime() string {
	return mustRead(RuntimeFile)
}

// Shim returns the default loader shim.
func Shim() string {
	return mustRead(ShimFile)
}

// Stdlib returns the default standard library in library form.
func Stdlib() string {
	return mustRead(StdlibFile)
}

// StdlibManifest decodes the default standard library.
func StdlibManifest() (*vfs.Manifest, error) {
	doc, err := vfs.Decode([]byte(Stdlib()), vfs.FormatLibrary)
	if err != nil {
		return nil, err
	}
	return doc.Manifest, nil
}

// Framework packages the framework.
func Framework(p *paket.Packager) (*vfs.Manifest, error) {
	return p.FS(FS, FrameworkDir, FrameworkName)
}
