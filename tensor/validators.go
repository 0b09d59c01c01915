// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Provide a single, canonical source of truth for shape checks.
//   - Return sentinels wrapped with a validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing on success.

package tensor

import (
	"fmt"
	"math"
	"slices"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateShape ensures every axis length is positive and the element count
// Π shape fits in an int. An empty shape (0-d scalar) is valid.
// Complexity: O(axes).
func ValidateShape(shape []int) error {
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return validatorErrorf("ValidateShape", fmt.Errorf("axis length %d: %w", n, ErrBadShape))
		}
		if n > math.MaxInt/size {
			return validatorErrorf("ValidateShape", fmt.Errorf("element count of %v overflows int: %w", shape, ErrBadShape))
		}
		size *= n
	}

	return nil
}

// ValidateSameShape ensures shapes a and b are identical.
// Complexity: O(axes).
func ValidateSameShape(a, b []int) error {
	if !slices.Equal(a, b) {
		return validatorErrorf("ValidateSameShape", fmt.Errorf("%v vs %v: %w", a, b, ErrDimensionMismatch))
	}

	return nil
}
