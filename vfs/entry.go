package vfs

import (
	"encoding/json"
	"path"
	"strings"
)

// Kind classifies an entry by its file extension.
type Kind int

const (
	KindOther  Kind = iota
	KindSource      // Python module
	KindScript      // JavaScript
	KindStyle       // stylesheet
	KindMarkup      // HTML
)

var kindNames = [...]string{
	KindOther:  "other",
	KindSource: "source",
	KindScript: "script",
	KindStyle:  "style",
	KindMarkup: "markup",
}

func (k Kind) String() string {
	return kindNames[k]
}

const (
	ExtPython = ".py"
	ExtJS     = ".js"
	ExtCSS    = ".css"
	ExtHTML   = ".html"
	ExtHTM    = ".htm"
)

// KindOf returns the kind of a file extension, which may be given with or
// without its leading dot.
func KindOf(ext string) Kind {
	switch NormalizeExt(ext) {
	case ExtPython:
		return KindSource
	case ExtJS:
		return KindScript
	case ExtCSS:
		return KindStyle
	case ExtHTML, ExtHTM:
		return KindMarkup
	}
	return KindOther
}

// NormalizeExt lower-cases ext and makes sure it starts with a dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtOf returns the normalized extension of a file name.
func ExtOf(name string) string {
	return NormalizeExt(path.Ext(name))
}

// Entry is one packaged file.
type Entry struct {
	// Ext is the wire kind tag: the lower-cased extension, dot included.
	Ext     string
	Content string
	// Package marks a package initializer (__init__.py).
	Package bool
	// Extra holds additional wire elements found between the content and
	// the package flag. They are written back unchanged.
	Extra []json.RawMessage
}

func (e *Entry) Kind() Kind {
	return KindOf(e.Ext)
}

// IsSource reports whether the entry holds Python source.
func (e *Entry) IsSource() bool {
	return e.Kind() == KindSource
}
