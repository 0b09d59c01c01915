// SPDX-License-Identifier: MIT
// Package space: sentinel error set.
// Every message is prefixed with "space: ". Operations wrap these sentinels
// with the method and offending key or value; callers match with errors.Is.
// All of them signal programming errors at the call site, not transient
// conditions. Contains never returns or raises an error.

package space

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals mutually exclusive options supplied together,
	// or mask/probability/seed values outside their legal range.
	ErrInvalidArgument = errors.New("space: invalid argument")

	// ErrTypeShapeMismatch signals a constructor, seed, mask or probability of
	// the wrong Go type, element type or shape.
	ErrTypeShapeMismatch = errors.New("space: type or shape mismatch")

	// ErrKeySetMismatch signals a mask, probability, seed or sample mapping
	// whose keys differ from the Dict's child keys.
	ErrKeySetMismatch = errors.New("space: key set mismatch")

	// ErrNotASpace signals a Dict child (or assigned value) that is not a Space.
	ErrNotASpace = errors.New("space: value is not a space")

	// ErrDuplicateKey signals a keyword child whose key is already present in
	// the mapping given to NewDict.
	ErrDuplicateKey = errors.New("space: duplicate key")

	// ErrKeyNotFound signals Dict.Get on a key that is not present.
	ErrKeyNotFound = errors.New("space: key not found")

	// ErrBatchSizeMismatch signals Dict.FromJSONable input whose children
	// decode to batches of different lengths.
	ErrBatchSizeMismatch = errors.New("space: batch size mismatch")

	// ErrNotFlattenable signals Flatten/Unflatten/FlatDim on a space that has
	// no fixed-length numeric vector form.
	ErrNotFlattenable = errors.New("space: space is not flattenable")
)

// spaceErrorf wraps err with the calling method.
func spaceErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}

// keyErrorf wraps err with the calling method and the child key it concerns.
func keyErrorf(method, key string, err error) error {
	return fmt.Errorf("%s: key %q: %w", method, key, err)
}
