package lexer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const DefaultEncoding = "utf-8"

var (
	codingRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)
	blankRe  = regexp.MustCompile(`^[ \t\f]*(?:[#\r\n]|$)`)
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// IsCodingLine reports whether line is an encoding declaration.
func IsCodingLine(line string) bool {
	return codingRe.MatchString(line)
}

// DetectEncoding returns the encoding declared in the first two lines of
// src, or utf-8. The second line is only consulted when the first one is
// blank or a comment.
func DetectEncoding(src []byte) string {
	if bytes.HasPrefix(src, utf8BOM) {
		return DefaultEncoding
	}
	lines := bytes.SplitN(src, []byte{'\n'}, 3)
	for i, line := range lines {
		if i == 2 {
			break
		}
		if m := codingRe.FindSubmatch(line); m != nil {
			return string(m[1])
		}
		if !blankRe.Match(line) {
			break
		}
	}
	return DefaultEncoding
}

// DecodeSource returns src as text, transcoded from its declared encoding.
func DecodeSource(src []byte) (string, error) {
	name := normalizeEncoding(DetectEncoding(src))
	if name == DefaultEncoding {
		return string(src), nil
	}

	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return "", fmt.Errorf("decoding %s source: %w", name, err)
	}
	return string(out), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

// normalizeEncoding maps Python codec spellings to registry labels.
func normalizeEncoding(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	switch name {
	case "utf-8", "utf8", "utf-8-sig", "u8":
		return DefaultEncoding
	case "latin-1", "iso-latin-1":
		return "latin1"
	}
	return name
}
