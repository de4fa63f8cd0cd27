package vfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Format selects the text wrapped around a manifest literal.
type Format int

const (
	// FormatRaw is the bare JSON literal (.vfs.json).
	FormatRaw Format = iota
	// FormatVariable assigns the literal to a variable (.vfs.js).
	FormatVariable
	// FormatLibrary installs the literal as the runtime's own virtual
	// filesystem. Used for the standard library.
	FormatLibrary
	// FormatAutoload wraps the literal in a function registering it with
	// the runtime's module search path at startup (.auto_vfs.js).
	FormatAutoload
)

const (
	SuffixRaw      = ".vfs.json"
	SuffixVariable = ".vfs.js"
	SuffixAutoload = ".auto_vfs.js"

	DefaultVariable = "$vfs"

	LibraryHeader = "__BRYTHON__.use_VFS = true;\n__BRYTHON__.VFS = "
)

const autoloadHeader = "\n;(function() {\n"

const autoloadFooter = `
    if(window.__ANPYLAR__ === undefined)
        window.__ANPYLAR__ = {autoload: []}  // ensure global scope

    window.__ANPYLAR__.autoload.push(function($B) {
        // the runtime drops the first two path entries when importing the stdlib
        $B.path.splice(2, 0, vfspath)
        $B.imported['_importlib'].VFSAutoPathFinder(vfspath, $vfs)  // autoload
    })
})()
`

var formatNames = [...]string{
	FormatRaw:      "raw",
	FormatVariable: "variable",
	FormatLibrary:  "library",
	FormatAutoload: "autoload",
}

func (f Format) String() string {
	return formatNames[f]
}

// Suffix is the file name suffix conventionally used for f.
func (f Format) Suffix() string {
	switch f {
	case FormatRaw:
		return SuffixRaw
	case FormatAutoload:
		return SuffixAutoload
	}
	return SuffixVariable
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown manifest format %q", name)
}

// FormatOf guesses the format of a file from its name.
func FormatOf(name string) (Format, bool) {
	switch {
	case strings.HasSuffix(name, SuffixAutoload):
		return FormatAutoload, true
	case strings.HasSuffix(name, SuffixVariable):
		return FormatVariable, true
	case strings.HasSuffix(name, SuffixRaw):
		return FormatRaw, true
	}
	return 0, false
}

type EncodeOptions struct {
	// Variable names the variable of FormatVariable; DefaultVariable if empty.
	Variable string
	// VfsPath is the load path registered by FormatAutoload; the manifest
	// base followed by SuffixVariable if empty.
	VfsPath string
	// Indent is the number of spaces per nesting level, 0 for compact output.
	Indent int
}

// MarshalJSON renders the manifest literal. HTML characters are escaped, as
// for any json.Marshaler; use Encode to get them verbatim.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return m.literal()
}

func (m *Manifest) literal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	writeString := func(s string) error {
		if err := enc.Encode(s); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		return nil
	}

	buf.WriteByte('{')
	for i, name := range m.keys {
		e := m.entries[name]
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(name); err != nil {
			return nil, err
		}
		buf.WriteString(":[")
		if err := writeString(e.Ext); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeString(e.Content); err != nil {
			return nil, err
		}
		for _, extra := range e.Extra {
			buf.WriteByte(',')
			if err := json.Compact(&buf, extra); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
			}
		}
		if e.Package {
			buf.WriteString(",1")
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode renders m in format f.
func Encode(m *Manifest, f Format, opts EncodeOptions) ([]byte, error) {
	lit, err := m.literal()
	if err != nil {
		return nil, err
	}

	prefix := ""
	if f == FormatAutoload {
		prefix = "    "
	}
	if opts.Indent > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, lit, prefix, strings.Repeat(" ", opts.Indent)); err != nil {
			return nil, err
		}
		lit = out.Bytes()
	}

	var buf bytes.Buffer
	switch f {
	case FormatRaw:
		buf.Write(lit)
	case FormatVariable:
		name := opts.Variable
		if name == "" {
			name = DefaultVariable
		}
		fmt.Fprintf(&buf, "var %s = ", name)
		buf.Write(lit)
	case FormatLibrary:
		buf.WriteString(LibraryHeader)
		buf.Write(lit)
	case FormatAutoload:
		vfspath := opts.VfsPath
		if vfspath == "" {
			vfspath = m.Base + SuffixVariable
		}
		quoted, err := json.Marshal(vfspath)
		if err != nil {
			return nil, err
		}
		buf.WriteString(autoloadHeader)
		fmt.Fprintf(&buf, "%svar vfspath = %s\n", prefix, quoted)
		fmt.Fprintf(&buf, "%svar %s = ", prefix, DefaultVariable)
		buf.Write(lit)
		buf.WriteByte('\n')
		buf.WriteString(autoloadFooter)
	default:
		return nil, fmt.Errorf("unknown manifest format %d", f)
	}
	return buf.Bytes(), nil
}

// Document is a decoded wire artifact. Start and End delimit the manifest
// literal inside Data.
type Document struct {
	Format   Format
	Manifest *Manifest
	// VfsPath is the load path declared by an autoload artifact.
	VfsPath string
	Data    []byte
	Start   int
	End     int
}

// Splice returns Data with the literal replaced by m, keeping the envelope.
func (d *Document) Splice(m *Manifest) ([]byte, error) {
	lit, err := m.literal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, d.Start+len(lit)+len(d.Data)-d.End)
	out = append(out, d.Data[:d.Start]...)
	out = append(out, lit...)
	out = append(out, d.Data[d.End:]...)
	return out, nil
}

var (
	rawRe      = regexp.MustCompile(`^\s*`)
	variableRe = regexp.MustCompile(`^\s*var\s+[$\w]+\s*=\s*`)
	libraryRe  = regexp.MustCompile(`__BRYTHON__\.VFS\s*=\s*`)
	vfspathRe  = regexp.MustCompile(`var\s+vfspath\s*=\s*"([^"]*)"`)
	autoloadRe = regexp.MustCompile(`var\s+\$vfs\s*=\s*`)
)

// Decode parses data in format f, locating the literal from its envelope.
func Decode(data []byte, f Format) (*Document, error) {
	doc := &Document{Format: f, Data: data}

	var loc []int
	switch f {
	case FormatRaw:
		loc = rawRe.FindIndex(data)
	case FormatVariable:
		loc = variableRe.FindIndex(data)
	case FormatLibrary:
		loc = libraryRe.FindIndex(data)
	case FormatAutoload:
		m := vfspathRe.FindSubmatchIndex(data)
		if m == nil {
			return nil, fmt.Errorf("%w: no vfspath declaration", ErrEnvelope)
		}
		doc.VfsPath = string(data[m[2]:m[3]])
		if loc = autoloadRe.FindIndex(data[m[1]:]); loc != nil {
			loc[0], loc[1] = loc[0]+m[1], loc[1]+m[1]
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %d", f)
	}

	if loc == nil || loc[1] >= len(data) || data[loc[1]] != '{' {
		return nil, fmt.Errorf("%w: %s", ErrEnvelope, f)
	}
	if err := doc.parse(loc[1]); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeLegacy locates the literal at the first opening brace, or the
// second one for FormatAutoload, whatever precedes it. It accepts
// artifacts whose envelope was written by other tools, but breaks as soon
// as that envelope contains a brace of its own.
func DecodeLegacy(data []byte, f Format) (*Document, error) {
	doc := &Document{Format: f, Data: data}
	if m := vfspathRe.FindSubmatch(data); m != nil {
		doc.VfsPath = string(m[1])
	}

	braces := 1
	if f == FormatAutoload {
		braces = 2
	}
	start := -1
	for i, b := range data {
		if b != '{' {
			continue
		}
		if braces--; braces == 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no manifest literal", ErrEnvelope)
	}
	if err := doc.parse(start); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) parse(start int) error {
	dec := json.NewDecoder(bytes.NewReader(d.Data[start:]))
	malformed := func(err error) error {
		line, col := position(d.Data, start+int(dec.InputOffset()))
		return fmt.Errorf("%w: line %d, column %d: %v", ErrMalformed, line, col, err)
	}

	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return malformed(fmt.Errorf("expected object, got %v", tok))
	}

	m := New("")
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed(err)
		}
		name, ok := tok.(string)
		if !ok {
			return malformed(fmt.Errorf("expected name, got %v", tok))
		}

		var raw []json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return malformed(fmt.Errorf("%s: %w", name, err))
		}
		e, err := decodeEntry(raw)
		if err != nil {
			return malformed(fmt.Errorf("%s: %w", name, err))
		}
		m.Set(name, e)
	}
	if _, err := dec.Token(); err != nil {
		return malformed(err)
	}

	m.Base = inferBase(m.keys)
	d.Manifest = m
	d.Start = start
	d.End = start + int(dec.InputOffset())
	return nil
}

var packageFlag = []byte("1")

func decodeEntry(raw []json.RawMessage) (*Entry, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("entry has %d elements, want at least 2", len(raw))
	}
	e := &Entry{}
	if err := json.Unmarshal(raw[0], &e.Ext); err != nil {
		return nil, fmt.Errorf("extension: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Content); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	rest := raw[2:]
	if n := len(rest); n > 0 && bytes.Equal(bytes.TrimSpace(rest[n-1]), packageFlag) {
		e.Package = true
		rest = rest[:n-1]
	}
	if len(rest) > 0 {
		e.Extra = rest
	}
	e.Ext = NormalizeExt(e.Ext)
	return e, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	line = 1 + bytes.Count(data[:offset], []byte{'\n'})
	col = offset - bytes.LastIndexByte(data[:offset], '\n')
	return line, col
}
