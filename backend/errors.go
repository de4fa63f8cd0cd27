package backend

import "errors"

var (
	// ErrOptimized is returned when a package is added after Optimize.
	ErrOptimized = errors.New("bundle already optimized")
	// ErrUnknownPackageKind is returned for a package path that is neither
	// a directory nor a known wire artifact.
	ErrUnknownPackageKind = errors.New("unknown package kind")
	ErrDistExists         = errors.New("distribution directory exists")
)
