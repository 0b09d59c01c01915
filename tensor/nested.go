// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"reflect"
)

// floatSource is satisfied by every Dense instantiation; FromNested uses it
// to convert between element types without a type switch per instantiation.
type floatSource interface {
	Shape() []int
	Float64s() []float64
}

// FromNested coerces x into an array of element type T.
//
// Accepted inputs:
//   - any *Dense (converted element-wise),
//   - numeric scalars (a 0-d array),
//   - arbitrarily nested slices or arrays of numbers or bools, including the
//     []any / float64 trees produced by encoding/json.
//
// Errors:
//   - ErrBadShape for an empty sequence,
//   - ErrRagged when siblings differ in length or depth,
//   - ErrNotNumeric for non-numeric leaves,
//   - ErrLossyConversion when a leaf does not fit T exactly.
func FromNested[T Element](x any) (*Dense[T], error) {
	if src, ok := x.(floatSource); ok && !isNilPointer(x) {
		return fromFloats[T](src.Shape(), src.Float64s())
	}

	rv := reflect.ValueOf(x)
	shape, err := nestedShape(rv)
	if err != nil {
		return nil, fmt.Errorf("FromNested: %w", err)
	}
	_, size := rowMajor(shape)
	flat := make([]float64, 0, size)
	if flat, err = collect(rv, shape, flat); err != nil {
		return nil, fmt.Errorf("FromNested: %w", err)
	}

	return fromFloats[T](shape, flat)
}

func isNilPointer(x any) bool {
	rv := reflect.ValueOf(x)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func fromFloats[T Element](shape []int, flat []float64) (*Dense[T], error) {
	d, err := New[T](shape...)
	if err != nil {
		return nil, fmt.Errorf("FromNested: %w", err)
	}
	for i, f := range flat {
		v, err := castElement[T](f)
		if err != nil {
			return nil, fmt.Errorf("FromNested: element %d: %w", i, err)
		}
		d.data[i] = v
	}

	return d, nil
}

// nestedShape walks the first element of every level to infer the shape.
func nestedShape(rv reflect.Value) ([]int, error) {
	var shape []int
	for {
		rv = unwrap(rv)
		if !isSequence(rv) {
			if _, err := leafFloat(rv); err != nil {
				return nil, err
			}
			return shape, nil
		}
		if rv.Len() == 0 {
			return nil, fmt.Errorf("empty sequence at axis %d: %w", len(shape), ErrBadShape)
		}
		shape = append(shape, rv.Len())
		rv = rv.Index(0)
	}
}

// collect appends the leaves of rv to flat in row-major order, checking that
// rv matches shape exactly.
func collect(rv reflect.Value, shape []int, flat []float64) ([]float64, error) {
	rv = unwrap(rv)
	if len(shape) == 0 {
		if isSequence(rv) {
			return nil, ErrRagged
		}
		f, err := leafFloat(rv)
		if err != nil {
			return nil, err
		}
		return append(flat, f), nil
	}
	if !isSequence(rv) || rv.Len() != shape[0] {
		return nil, ErrRagged
	}
	var err error
	for i := 0; i < rv.Len(); i++ {
		if flat, err = collect(rv.Index(i), shape[1:], flat); err != nil {
			return nil, err
		}
	}

	return flat, nil
}

func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) && !rv.IsNil() {
		rv = rv.Elem()
	}

	return rv
}

func isSequence(rv reflect.Value) bool {
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

func leafFloat(rv reflect.Value) (float64, error) {
	if !rv.IsValid() {
		return 0, fmt.Errorf("nil: %w", ErrNotNumeric)
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%s: %w", rv.Type(), ErrNotNumeric)
	}
}
