package vfs

import "errors"

var (
	// ErrMalformed is returned when a manifest literal is not valid.
	ErrMalformed = errors.New("malformed manifest")
	// ErrEnvelope is returned when the text around a manifest literal does
	// not match the expected wire format.
	ErrEnvelope = errors.New("manifest envelope not found")
)
