// SPDX-License-Identifier: MIT

// Package tensor - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a flat row-major buffer with the explicit offset formula Σ idx[k]*stride[k].
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - New/FromFlat: O(n); At/Set: O(axes); Clone/Equal/Data: O(n).

package tensor

import (
	"fmt"
	"slices"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNew      = "New"
	ctxFromFlat = "FromFlat"
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxWhere    = "Where"
)

// ---------- Formatting literals ----------
const (
	_fmtOpen  = "["
	_fmtClose = "]"
	_fmtSep   = ", "
)

// denseErrorf wraps an error with a uniform Dense context and the offending index.
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves the sentinel via %w.
func denseErrorf(method string, idx []int, err error) error {
	return fmt.Errorf("Dense.%s(%v): %w", method, idx, err)
}

// Dense is a concrete row-major n-dimensional array.
//   - shape holds the axis lengths; an empty shape is a 0-d scalar with one element.
//   - strides[k] is the flat distance between neighbours along axis k.
//   - data is a flat buffer of length Π shape.
type Dense[T Element] struct {
	shape   []int // axis lengths (each > 0)
	strides []int // row-major strides, len == len(shape)
	data    []T   // contiguous row-major storage
}

var _ fmt.Stringer = (*Dense[int8])(nil)

// New creates a zero-filled array of the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate every axis length is > 0 (ValidateShape).
//   - Stage 2: compute row-major strides and allocate the zero-filled buffer.
//
// Errors:
//   - ErrBadShape when an axis length is not positive.
//
// Complexity:
//   - Time O(n), Space O(n) where n = Π shape.
func New[T Element](shape ...int) (*Dense[T], error) {
	if err := ValidateShape(shape); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNew, err)
	}
	strides, size := rowMajor(shape)

	return &Dense[T]{
		shape:   slices.Clone(shape),
		strides: strides,
		data:    make([]T, size),
	}, nil
}

// FromFlat creates an array of the given shape holding a copy of data.
// Errors: ErrBadShape (invalid shape), ErrDimensionMismatch (len(data) != Π shape).
func FromFlat[T Element](shape []int, data []T) (*Dense[T], error) {
	d, err := New[T](shape...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromFlat, err)
	}
	if len(data) != len(d.data) {
		return nil, fmt.Errorf("%s: %d elements for shape %v: %w", ctxFromFlat, len(data), shape, ErrDimensionMismatch)
	}
	copy(d.data, data)

	return d, nil
}

// Full creates an array of the given shape with every element set to v.
func Full[T Element](v T, shape ...int) (*Dense[T], error) {
	d, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	for i := range d.data {
		d.data[i] = v
	}

	return d, nil
}

// rowMajor computes strides and total size for shape.
func rowMajor(shape []int) ([]int, int) {
	strides := make([]int, len(shape))
	size := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = size
		size *= shape[k]
	}

	return strides, size
}

// Shape returns a copy of the axis lengths.
func (d *Dense[T]) Shape() []int { return slices.Clone(d.shape) }

// NDim returns the number of axes.
func (d *Dense[T]) NDim() int { return len(d.shape) }

// Len returns the total number of elements.
func (d *Dense[T]) Len() int { return len(d.data) }

// DType returns the element type tag.
func (d *Dense[T]) DType() DType { return DTypeOf[T]() }

// Data returns a copy of the flat row-major buffer.
func (d *Dense[T]) Data() []T { return slices.Clone(d.data) }

// offset computes the flat offset of idx or returns ErrOutOfRange.
func (d *Dense[T]) offset(idx []int) (int, error) {
	if len(idx) != len(d.shape) {
		return 0, ErrOutOfRange
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= d.shape[k] {
			return 0, ErrOutOfRange
		}
		off += i * d.strides[k]
	}

	return off, nil
}

// At returns the element at idx or ErrOutOfRange.
// Never panics on a bad index.
func (d *Dense[T]) At(idx ...int) (T, error) {
	off, err := d.offset(idx)
	if err != nil {
		var zero T
		return zero, denseErrorf(ctxAt, idx, err)
	}

	return d.data[off], nil
}

// Set stores v at idx or returns ErrOutOfRange.
func (d *Dense[T]) Set(v T, idx ...int) error {
	off, err := d.offset(idx)
	if err != nil {
		return denseErrorf(ctxSet, idx, err)
	}
	d.data[off] = v

	return nil
}

// Clone returns a deep copy that shares no storage with d.
func (d *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		shape:   slices.Clone(d.shape),
		strides: slices.Clone(d.strides),
		data:    slices.Clone(d.data),
	}
}

// Equal reports whether o has the same shape and elements as d.
// A nil receiver equals only a nil argument.
func (d *Dense[T]) Equal(o *Dense[T]) bool {
	if d == nil || o == nil {
		return d == o
	}

	return slices.Equal(d.shape, o.shape) && slices.Equal(d.data, o.data)
}

// Float64s returns the elements converted to float64, in row-major order.
func (d *Dense[T]) Float64s() []float64 {
	out := make([]float64, len(d.data))
	for i, v := range d.data {
		out[i] = float64(v)
	}

	return out
}

// ToNested returns the array as plain nested []any with one level per axis.
// Leaves are int for integer arrays and float64 otherwise; a 0-d array
// returns its single scalar. The result is directly encodable as JSON.
func (d *Dense[T]) ToNested() any {
	if len(d.shape) == 0 {
		return d.leaf(0)
	}

	return d.nested(0, 0)
}

func (d *Dense[T]) nested(axis, base int) []any {
	out := make([]any, d.shape[axis])
	for i := range out {
		off := base + i*d.strides[axis]
		if axis == len(d.shape)-1 {
			out[i] = d.leaf(off)
			continue
		}
		out[i] = d.nested(axis+1, off)
	}

	return out
}

func (d *Dense[T]) leaf(off int) any {
	if DTypeOf[T]() == Int8 {
		return int(d.data[off])
	}

	return float64(d.data[off])
}

// String renders the array as nested brackets, e.g. "[[1, 0], [0, 1]]".
func (d *Dense[T]) String() string {
	var sb strings.Builder
	writeNested(&sb, d.ToNested())

	return sb.String()
}

func writeNested(sb *strings.Builder, v any) {
	items, ok := v.([]any)
	if !ok {
		fmt.Fprintf(sb, "%v", v)
		return
	}
	sb.WriteString(_fmtOpen)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(_fmtSep)
		}
		writeNested(sb, item)
	}
	sb.WriteString(_fmtClose)
}

// Where returns a new array taking a[i] where cond[i] is true and b[i] otherwise.
// cond is indexed by flat row-major offset.
//
// Errors:
//   - ErrDimensionMismatch when a and b differ in shape or len(cond) != a.Len().
func Where[T Element](cond []bool, a, b *Dense[T]) (*Dense[T], error) {
	if err := ValidateSameShape(a.shape, b.shape); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxWhere, err)
	}
	if len(cond) != len(a.data) {
		return nil, fmt.Errorf("%s: condition has %d entries, want %d: %w", ctxWhere, len(cond), len(a.data), ErrDimensionMismatch)
	}
	out := b.Clone()
	for i, take := range cond {
		if take {
			out.data[i] = a.data[i]
		}
	}

	return out, nil
}
