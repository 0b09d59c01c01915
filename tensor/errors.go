// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// Every message is prefixed with "tensor: ". Public functions wrap these
// sentinels with call-site context (fmt.Errorf("ctx: %w", ErrX)); callers
// match them with errors.Is.

package tensor

import "errors"

var (
	// ErrBadShape is returned when a shape has a negative or zero axis length,
	// or when nested input contains an empty sequence.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates that an index tuple is outside the array bounds
	// or has the wrong number of axes.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands or
	// a flat buffer whose length does not match the requested shape.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrRagged is returned by FromNested when sibling sequences differ in length
	// or nesting depth.
	ErrRagged = errors.New("tensor: ragged nested sequence")

	// ErrNotNumeric is returned by FromNested when a leaf is not a number.
	ErrNotNumeric = errors.New("tensor: non-numeric element")

	// ErrLossyConversion is returned when a value cannot be represented exactly
	// in the target element type (e.g. 0.5 or 300 into int8).
	ErrLossyConversion = errors.New("tensor: lossy element conversion")
)
