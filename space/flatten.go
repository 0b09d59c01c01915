// SPDX-License-Identifier: MIT

// Package space - flattening of members into fixed-length numeric vectors.
//
// Purpose:
//   - Give consumers of IsFlattenable spaces a single *mat.VecDense per member.
//   - Keep the layout deterministic: leaves flatten row-major, a Dict
//     concatenates its children in stored key order.
//   - Any Space outside this package is a leaf here when IsFlattenable is
//     true, Shape is non-nil and DType is Int8 or Float64; its members are
//     arrays of that shape and Unflatten returns *tensor.Dense of that dtype.
//
// Complexity quicksheet:
//   - FlatDim: O(nodes); Flatten/Unflatten: O(nodes + elements).

package space

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvspace/tensor"
)

const (
	ctxFlatDim   = "FlatDim"
	ctxFlatten   = "Flatten"
	ctxUnflatten = "Unflatten"
)

// FlatDim returns the length of the vector Flatten produces for sp.
//
// Errors:
//   - ErrNotFlattenable when sp (or a descendant) has no vector form.
func FlatDim(sp Space) (int, error) {
	if d, ok := sp.(*Dict); ok {
		total := 0
		for k, child := range d.All() {
			n, err := FlatDim(child)
			if err != nil {
				return 0, keyErrorf(ctxFlatDim, k, err)
			}
			total += n
		}
		return total, nil
	}
	shape, _, err := leafLayout(sp)
	if err != nil {
		return 0, spaceErrorf(ctxFlatDim, err)
	}

	return elementCount(shape), nil
}

// leafLayout returns the member shape and dtype of a flattenable leaf.
func leafLayout(sp Space) ([]int, tensor.DType, error) {
	if isNil(sp) || !sp.IsFlattenable() {
		return nil, tensor.Invalid, fmt.Errorf("%T: %w", sp, ErrNotFlattenable)
	}
	shape, dt := sp.Shape(), sp.DType()
	if shape == nil || (dt != tensor.Int8 && dt != tensor.Float64) {
		return nil, tensor.Invalid, fmt.Errorf("%T has no array layout (shape %v, dtype %s): %w", sp, shape, dt, ErrNotFlattenable)
	}

	return shape, dt, nil
}

func elementCount(shape []int) int {
	n := 1
	for _, v := range shape {
		n *= v
	}

	return n
}

// Flatten maps member x of sp onto a vector of length FlatDim(sp).
//
// Errors:
//   - ErrNotFlattenable for unsupported spaces and for a zero-length result
//     (a Dict without children), which gonum cannot represent.
//   - ErrTypeShapeMismatch / ErrKeySetMismatch when x does not fit sp.
func Flatten(sp Space, x any) (*mat.VecDense, error) {
	data, err := flattenInto(nil, sp, x)
	if err != nil {
		return nil, spaceErrorf(ctxFlatten, err)
	}
	if len(data) == 0 {
		return nil, spaceErrorf(ctxFlatten, fmt.Errorf("zero-length vector for %s: %w", sp, ErrNotFlattenable))
	}

	return mat.NewVecDense(len(data), data), nil
}

func flattenInto(dst []float64, sp Space, x any) ([]float64, error) {
	if d, ok := sp.(*Dict); ok {
		m, ok := stringMap(x)
		if !ok {
			return nil, fmt.Errorf("expected a map keyed by string, actual type: %T: %w", x, ErrTypeShapeMismatch)
		}
		if !d.sameKeys(m) {
			return nil, fmt.Errorf("member keys %v, space keys %v: %w", keyList(m), d.keys, ErrKeySetMismatch)
		}
		var err error
		for k, child := range d.All() {
			if dst, err = flattenInto(dst, child, m[k]); err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
		}
		return dst, nil
	}

	shape, dt, err := leafLayout(sp)
	if err != nil {
		return nil, err
	}
	var (
		got    []int
		values []float64
	)
	if dt == tensor.Int8 {
		arr, err := tensor.FromNested[int8](x)
		if err != nil {
			return nil, err
		}
		got, values = arr.Shape(), arr.Float64s()
	} else {
		arr, err := tensor.FromNested[float64](x)
		if err != nil {
			return nil, err
		}
		got, values = arr.Shape(), arr.Float64s()
	}
	if !slices.Equal(got, shape) {
		return nil, fmt.Errorf("member shape %v, want %v: %w", got, shape, ErrTypeShapeMismatch)
	}

	return append(dst, values...), nil
}

// Unflatten rebuilds a member of sp from a vector produced by Flatten.
//
// Errors:
//   - ErrTypeShapeMismatch when v.Len() != FlatDim(sp).
//   - tensor.ErrLossyConversion when a leaf value is not a valid element.
//   - ErrNotFlattenable for spaces without an array layout.
func Unflatten(sp Space, v mat.Vector) (any, error) {
	want, err := FlatDim(sp)
	if err != nil {
		return nil, spaceErrorf(ctxUnflatten, err)
	}
	if v.Len() != want {
		return nil, spaceErrorf(ctxUnflatten, fmt.Errorf("vector length %d, want %d: %w", v.Len(), want, ErrTypeShapeMismatch))
	}
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}

	x, _, err := unflattenFrom(data, sp)
	if err != nil {
		return nil, spaceErrorf(ctxUnflatten, err)
	}

	return x, nil
}

// unflattenFrom consumes the prefix of data that belongs to sp and returns
// the rebuilt member with the remaining suffix.
func unflattenFrom(data []float64, sp Space) (any, []float64, error) {
	if d, ok := sp.(*Dict); ok {
		out := make(map[string]any, d.Len())
		for k, child := range d.All() {
			var (
				x   any
				err error
			)
			if x, data, err = unflattenFrom(data, child); err != nil {
				return nil, nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = x
		}
		return out, data, nil
	}

	shape, dt, err := leafLayout(sp)
	if err != nil {
		return nil, nil, err
	}
	n := elementCount(shape)
	if dt == tensor.Float64 {
		arr, err := tensor.FromFlat(shape, data[:n])
		if err != nil {
			return nil, nil, err
		}
		return arr, data[n:], nil
	}
	flat, err := tensor.FromNested[int8](data[:n])
	if err != nil {
		return nil, nil, err
	}
	arr, err := tensor.FromFlat(shape, flat.Data())
	if err != nil {
		return nil, nil, err
	}

	return arr, data[n:], nil
}
