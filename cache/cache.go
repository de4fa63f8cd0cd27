// Package cache stores minified sources keyed by their content, so that
// unchanged files are not minified again on the next run.
package cache

import (
	"errors"
	"strconv"

	"github.com/anpylar/anpylar/common"
)

var ErrMiss = errors.New("cache miss")

// Store is a content-addressed byte store.
type Store interface {
	// Get returns ErrMiss when key is absent.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

type Options struct {
	// Dir holds the database files. Defaults to the user cache directory.
	Dir      string
	InMemory bool
}

// minifyVersion changes whenever minified output for the same input changes.
const minifyVersion = "1"

// MinifyKey identifies the minified form of src.
func MinifyKey(src string, keepHeaders bool) string {
	return "minify/" + common.SHA256Hex(minifyVersion, strconv.FormatBool(keepHeaders), src)
}
