package paket

import "errors"

var (
	ErrNotDir        = errors.New("not a directory")
	ErrNameCollision = errors.New("name collision")
	ErrAssetMinify   = errors.New("asset minification failed")
)
