// Package project reads and writes the package.json of an application.
// Only the package list and the package directory are managed; every other
// field is kept as it was, in its original order.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	file_path "github.com/anpylar/anpylar/filepath"
)

var ErrInvalidFormat = errors.New("invalid project file")

const (
	keyPackages = "packages"
	keyPkgDir   = "pkgdir"
	keyDebug    = "debug"
	keyData     = "data"
)

type File struct {
	keys   []string
	fields map[string]json.RawMessage
}

func New() *File {
	f := &File{fields: make(map[string]json.RawMessage)}
	f.set(keyPackages, []string{})
	return f
}

// Load reads the project file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a project file, keeping the order of its fields.
func Parse(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidFormat)
	}

	f := &File{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if _, dup := f.fields[key]; !dup {
			f.keys = append(f.keys, key)
		}
		f.fields[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidFormat)
	}

	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

// check rejects managed fields of the wrong type.
func (f *File) check() error {
	var pkgs []string
	if err := f.get(keyPackages, &pkgs); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFormat, keyPackages, err)
	}
	var dir string
	if err := f.get(keyPkgDir, &dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFormat, keyPkgDir, err)
	}
	return nil
}

func (f *File) get(key string, v any) error {
	raw, ok := f.fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (f *File) set(key string, v any) {
	if err := f.SetField(key, v); err != nil { // strings and string slices only
		panic(err)
	}
}

// SetField sets a field that is not managed by the file, appending it if
// new.
func (f *File) SetField(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, ok := f.fields[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.fields[key] = raw
	return nil
}

// Keys returns the field names in file order.
func (f *File) Keys() []string {
	return slices.Clone(f.keys)
}

// Field returns the raw value of a field.
func (f *File) Field(key string) (json.RawMessage, bool) {
	raw, ok := f.fields[key]
	return raw, ok
}

func (f *File) Packages() []string {
	var pkgs []string
	_ = f.get(keyPackages, &pkgs)
	return pkgs
}

func (f *File) PkgDir() string {
	var dir string
	_ = f.get(keyPkgDir, &dir)
	return dir
}

// Debug reports the debug field. Values that are not booleans read as
// false.
func (f *File) Debug() bool {
	var on bool
	if err := f.get(keyDebug, &on); err != nil {
		return false
	}
	return on
}

// Data returns the data list. The second result is false when the field
// is absent or not a list of strings.
func (f *File) Data() ([]string, bool) {
	raw, ok := f.fields[keyData]
	if !ok {
		return nil, false
	}
	var data []string
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// AddPackages appends the names not listed yet.
func (f *File) AddPackages(names ...string) {
	pkgs := f.Packages()
	for _, name := range names {
		name = file_path.Clean(name)
		if !slices.Contains(pkgs, name) {
			pkgs = append(pkgs, name)
		}
	}
	if pkgs == nil {
		pkgs = []string{}
	}
	f.set(keyPackages, pkgs)
}

// SetPkgDir sets the package directory. An existing value is only replaced
// with force. It reports whether the field was written.
func (f *File) SetPkgDir(dir string, force bool) bool {
	if f.PkgDir() != "" && !force {
		return false
	}
	f.set(keyPkgDir, file_path.Clean(dir))
	return true
}

// MarshalJSON renders the fields in order, indented by four spaces.
func (f *File) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(f.fields[key])
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (f *File) Save(path string) error {
	data, err := f.MarshalJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
