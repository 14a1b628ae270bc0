// Package cuterr defines the error classes reported by the cutting engine.
//
// Every error returned by the engine wraps one of the sentinels below, so
// callers can branch with errors.Is regardless of the detail message.
package cuterr

import (
	"github.com/pkg/errors"
)

var (
	// ErrMalformedMesh marks problems with the caller's input mesh.
	ErrMalformedMesh = errors.New("malformed mesh")
	// ErrInternalInvariant marks geometric impossibilities and programmer errors.
	ErrInternalInvariant = errors.New("internal invariant violated")
	// ErrInvalidOptions marks option combinations the engine cannot honour.
	ErrInvalidOptions = errors.New("invalid options")
)

// Malformed returns an ErrMalformedMesh with a formatted detail message
func Malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedMesh, format, args...)
}

// Invariant returns an ErrInternalInvariant with a formatted detail message
func Invariant(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInternalInvariant, format, args...)
}

// InvalidOptions returns an ErrInvalidOptions with a formatted detail message
func InvalidOptions(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidOptions, format, args...)
}

// IsMalformed reports whether err is caused by a malformed input mesh
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedMesh)
}

// IsInvariant reports whether err is an internal invariant violation
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInternalInvariant)
}
