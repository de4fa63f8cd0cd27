package paket

import (
	"errors"
	"fmt"

	"github.com/anpylar/anpylar/vfs"
	"github.com/evanw/esbuild/pkg/api"
)

// minifyAsset shrinks JavaScript and CSS with esbuild. Identifiers are left
// alone: the runtime looks modules up by their top level names.
func minifyAsset(fpath, ext string, data []byte) (string, error) {
	loader := api.LoaderJS
	if ext == vfs.ExtCSS {
		loader = api.LoaderCSS
	}

	result := api.Transform(string(data), api.TransformOptions{
		Loader:           loader,
		Sourcefile:       fpath,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		Target:           api.ES2015,
	})
	if len(result.Errors) > 0 {
		errs := make([]error, len(result.Errors))
		for i, msg := range result.Errors {
			if msg.Location != nil {
				errs[i] = fmt.Errorf("%s:%d:%d: %s", fpath, msg.Location.Line, msg.Location.Column, msg.Text)
			} else {
				errs[i] = fmt.Errorf("%s: %s", fpath, msg.Text)
			}
		}
		return "", fmt.Errorf("%w: %w", ErrAssetMinify, errors.Join(errs...))
	}
	return string(result.Code), nil
}
