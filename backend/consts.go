package backend

import "regexp"

const (
	// BundleFile is the default name of the assembled bundle.
	BundleFile = "anpylar.js"
	// DistDir is the default distribution directory of Webpack.
	DistDir = "__webpack__"

	PackageJSON = "package.json"
	initFile    = "__init__.py"
	gzipSuffix  = ".gz"
)

// debugCallRe is the runtime initialization call inside the shim.
var debugCallRe = regexp.MustCompile(`brython\([^)]*\)`)

// patchDebug rewrites the first runtime initialization call of shim so
// that the runtime keeps line information when on is set.
func patchDebug(shim string, on bool) string {
	call := "brython()"
	if on {
		call = "brython(1)"
	}
	loc := debugCallRe.FindStringIndex(shim)
	if loc == nil {
		return shim
	}
	return shim[:loc[0]] + call + shim[loc[1]:]
}
