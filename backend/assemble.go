package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anpylar/anpylar/vfs"
	"github.com/klauspost/compress/gzip"
)

type assembler struct {
	buf bytes.Buffer
}

// segment writes s followed by a line break.
func (a *assembler) segment(s string) {
	a.buf.WriteString(s)
	a.buf.WriteByte('\n')
}

// Bytes assembles the bundle, preparing it first if needed.
func (b *Bundler) Bytes() ([]byte, error) {
	if err := b.Prepare(); err != nil {
		return nil, err
	}

	var a assembler
	a.buf.Grow(len(b.runtime) + len(b.stdlib) + len(b.shim) + 1024*len(b.packages))
	a.segment(b.runtime)
	a.segment(b.stdlib)
	for _, p := range b.packages {
		a.segment(p.text)
	}
	a.segment(patchDebug(b.shim, b.debug))
	return a.buf.Bytes(), nil
}

// WriteTo writes the assembled bundle to w.
func (b *Bundler) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

type WriteOptions struct {
	// Gzip also writes a compressed copy next to the bundle.
	Gzip bool
}

// Write assembles the bundle and writes it to path. Nothing is written if
// assembly or compression fails, and the bundle is removed again when its
// compressed copy cannot be written.
func (b *Bundler) Write(path string, opts WriteOptions) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	var gz []byte
	if opts.Gzip {
		if gz, err = compress(filepath.Base(path), data); err != nil {
			return fmt.Errorf("%s%s: %w", path, gzipSuffix, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	if gz != nil {
		if err := os.WriteFile(path+gzipSuffix, gz, 0o644); err != nil {
			return errors.Join(err, os.Remove(path))
		}
	}
	b.log.Info().Str("file", path).Int("bytes", len(data)).Bool("gzip", gz != nil).Msg("wrote bundle")
	return nil
}

// compress gzips data at the best compression, recording name as the
// original file name.
func compress(name string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	zw.Name = name
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// baseOf names a package read from a wire artifact whose keys share no
// common root: by its declared load path, or else by its file name.
func baseOf(path, vfspath string) string {
	name := vfspath
	if name == "" {
		name = filepath.Base(path)
	}
	for _, suffix := range []string{vfs.SuffixAutoload, vfs.SuffixVariable, vfs.SuffixRaw, ".json", ".js"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
