// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"
)

// Element is the set of element types a Dense array may hold.
type Element interface {
	~int8 | ~float64
}

// DType tags the element type of an array.
type DType int

const (
	// Invalid is the zero DType; composite spaces report it because their
	// members are not a single homogeneous array.
	Invalid DType = iota
	// Int8 is an 8-bit signed integer element.
	Int8
	// Float64 is a double-precision float element.
	Float64
)

// String implements fmt.Stringer.
func (d DType) String() string {
	switch d {
	case Int8:
		return "int8"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// DTypeOf reports the DType for the element type T.
func DTypeOf[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case float64:
		return Float64
	default:
		return Invalid
	}
}

// castElement converts f to T, rejecting values that T cannot hold exactly.
func castElement[T Element](f float64) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int8:
		if math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt8 || f > math.MaxInt8 {
			return zero, fmt.Errorf("%v to int8: %w", f, ErrLossyConversion)
		}
	}

	return T(f), nil
}
