// SPDX-License-Identifier: MIT

package space

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvspace/tensor"
)

// ---------- error context tags ----------

const (
	ctxNewMultiBinary = "NewMultiBinary"
	ctxMBSample       = "MultiBinary.Sample"
	ctxMBSeed         = "MultiBinary.Seed"
	ctxMBToJSON       = "MultiBinary.ToJSONable"
	ctxMBFromJSON     = "MultiBinary.FromJSONable"
)

// Mask values accepted by MultiBinary.Sample.
const (
	MaskZero int8 = 0 // force the bit to 0
	MaskOne  int8 = 1 // force the bit to 1
	MaskFree int8 = 2 // draw the bit uniformly
)

// MultiBinary is a leaf space of int8 arrays of a fixed shape whose elements
// are all 0 or 1. Members are *tensor.Dense[int8].
//
//	mb, _ := space.NewMultiBinary(5, space.WithSeed(42))
//	x, _ := mb.Sample()            // e.g. [1, 0, 1, 0, 1]
//	grid, _ := space.NewMultiBinary([]int{3, 2})
type MultiBinary struct {
	base
	n    []int // member shape; every entry > 0
	flat bool  // constructed from a single integer
}

var _ Space = (*MultiBinary)(nil)

// NewMultiBinary creates a binary space.
//
// n is either a single integer (flat arrays of that length) or a sequence of
// integers (one entry per axis): any Go integer slice or array, or a 1-d
// *tensor.Dense. Every entry must be positive.
//
// Errors:
//   - ErrInvalidArgument for a non-positive entry, a shape whose element
//     count overflows int, or a WithSpace option.
//   - ErrTypeShapeMismatch for any other type of n, naming the type.
//   - whatever Seed returns for a WithSeed option.
func NewMultiBinary(n any, opts ...Option) (*MultiBinary, error) {
	shape, flat, err := binaryShape(n)
	if err != nil {
		return nil, spaceErrorf(ctxNewMultiBinary, err)
	}
	size := 1
	for _, v := range shape {
		if v <= 0 {
			return nil, spaceErrorf(ctxNewMultiBinary, fmt.Errorf("n entries must be positive, got %v: %w", shape, ErrInvalidArgument))
		}
		if v > math.MaxInt/size {
			return nil, spaceErrorf(ctxNewMultiBinary, fmt.Errorf("element count of %v overflows int: %w", shape, ErrInvalidArgument))
		}
		size *= v
	}

	o := gatherOptions(opts)
	if len(o.children) > 0 {
		return nil, spaceErrorf(ctxNewMultiBinary, fmt.Errorf("WithSpace applies to Dict only: %w", ErrInvalidArgument))
	}
	mb := &MultiBinary{n: shape, flat: flat}
	if src, ok := o.seed.(RandomSource); ok && !isNil(src) {
		mb.rng = src
	} else if o.seed != nil {
		if _, err := mb.Seed(o.seed); err != nil {
			return nil, spaceErrorf(ctxNewMultiBinary, err)
		}
	}

	return mb, nil
}

// binaryShape normalizes the accepted forms of n.
func binaryShape(n any) ([]int, bool, error) {
	if v, ok := integerSeed(n); ok {
		return []int{int(v)}, true, nil
	}
	if d, ok := n.(interface {
		NDim() int
		Float64s() []float64
	}); ok && !isNil(n) {
		if d.NDim() != 1 {
			return nil, false, fmt.Errorf("expected a 1-d array for n, got %d axes: %w", d.NDim(), ErrTypeShapeMismatch)
		}
		fs := d.Float64s()
		shape := make([]int, len(fs))
		for i, f := range fs {
			if f != math.Trunc(f) {
				return nil, false, fmt.Errorf("n entry %v is not an integer: %w", f, ErrTypeShapeMismatch)
			}
			shape[i] = int(f)
		}
		return shape, false, nil
	}

	rv := reflect.ValueOf(n)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		shape := make([]int, rv.Len())
		for i := range shape {
			v, ok := integerSeed(rv.Index(i).Interface())
			if !ok {
				return nil, false, fmt.Errorf("n entry %d has type %s: %w", i, rv.Index(i).Type(), ErrTypeShapeMismatch)
			}
			shape[i] = int(v)
		}
		return shape, false, nil
	}

	return nil, false, fmt.Errorf("expected n to be an int or a sequence of ints, actual type: %T: %w", n, ErrTypeShapeMismatch)
}

// N returns the member shape (a single-entry slice for a flat space).
func (mb *MultiBinary) N() []int { return slices.Clone(mb.n) }

// IsFlat reports whether the space was constructed from a single integer.
func (mb *MultiBinary) IsFlat() bool { return mb.flat }

// Shape returns the member shape; never nil for a MultiBinary.
func (mb *MultiBinary) Shape() []int { return slices.Clone(mb.n) }

// DType is always tensor.Int8.
func (mb *MultiBinary) DType() tensor.DType { return tensor.Int8 }

// IsFlattenable is always true for a binary array.
func (mb *MultiBinary) IsFlattenable() bool { return true }

// Sample draws one member.
//
// Without constraints every element is an independent fair bit. With
// WithMask(m), m must be a *tensor.Dense[int8] of the space's shape holding
// only MaskZero, MaskOne or MaskFree: 0/1 force the bit, 2 leaves it free.
// With WithProbability(p), p must be a *tensor.Dense[float64] of the space's
// shape with entries in [0,1]; element i is 1 iff a uniform draw u < p[i].
//
// Errors:
//   - ErrInvalidArgument: both constraints, or a mask/probability value out of range.
//   - ErrTypeShapeMismatch: a constraint of the wrong type, dtype or shape.
func (mb *MultiBinary) Sample(opts ...SampleOption) (any, error) {
	so, err := gatherSampleOptions(opts)
	if err != nil {
		return nil, spaceErrorf(ctxMBSample, err)
	}

	var out *tensor.Dense[int8]
	switch {
	case so.mask != nil:
		out, err = mb.sampleMasked(so.mask)
	case so.probability != nil:
		out, err = mb.sampleWeighted(so.probability)
	default:
		out, err = mb.draw()
	}
	if err != nil {
		return nil, spaceErrorf(ctxMBSample, err)
	}

	return out, nil
}

// draw fills a fresh array with fair bits from the space's own source.
func (mb *MultiBinary) draw() (*tensor.Dense[int8], error) {
	rng := mb.RNG()
	size := 1
	for _, v := range mb.n {
		size *= v
	}
	bits := make([]int8, size)
	for i := range bits {
		bits[i] = int8(rng.IntN(2))
	}

	return tensor.FromFlat(mb.n, bits)
}

func (mb *MultiBinary) sampleMasked(m any) (*tensor.Dense[int8], error) {
	mask, ok := m.(*tensor.Dense[int8])
	if !ok {
		return nil, fmt.Errorf("expected mask of type *tensor.Dense[int8], actual type: %T: %w", m, ErrTypeShapeMismatch)
	}
	if !slices.Equal(mask.Shape(), mb.n) {
		return nil, fmt.Errorf("expected mask shape %v, actual shape: %v: %w", mb.n, mask.Shape(), ErrTypeShapeMismatch)
	}
	values := mask.Data()
	free := make([]bool, len(values))
	for i, v := range values {
		if v != MaskZero && v != MaskOne && v != MaskFree {
			return nil, fmt.Errorf("mask values must be 0, 1 or 2, actual values: %v: %w", mask, ErrInvalidArgument)
		}
		free[i] = v == MaskFree
	}

	// One full draw per call so free positions stay aligned with the seed.
	random, err := mb.draw()
	if err != nil {
		return nil, err
	}

	return tensor.Where(free, random, mask)
}

func (mb *MultiBinary) sampleWeighted(p any) (*tensor.Dense[int8], error) {
	prob, ok := p.(*tensor.Dense[float64])
	if !ok {
		return nil, fmt.Errorf("expected probability of type *tensor.Dense[float64], actual type: %T: %w", p, ErrTypeShapeMismatch)
	}
	if !slices.Equal(prob.Shape(), mb.n) {
		return nil, fmt.Errorf("expected probability shape %v, actual shape: %v: %w", mb.n, prob.Shape(), ErrTypeShapeMismatch)
	}
	weights := prob.Data()
	for _, w := range weights {
		if !(w >= 0 && w <= 1) {
			return nil, fmt.Errorf("probability values must be in [0, 1], actual values: %v: %w", prob, ErrInvalidArgument)
		}
	}

	rng := mb.RNG()
	bits := make([]int8, len(weights))
	for i, w := range weights {
		if rng.Float64() < w {
			bits[i] = 1
		}
	}

	return tensor.FromFlat(mb.n, bits)
}

// Contains reports whether x is an array (or nested sequence) of exactly the
// space's shape holding only 0 and 1.
func (mb *MultiBinary) Contains(x any) bool {
	if !arrayLike(x) {
		return false
	}
	arr, err := tensor.FromNested[float64](x)
	if err != nil || !slices.Equal(arr.Shape(), mb.n) {
		return false
	}
	for _, v := range arr.Data() {
		if v != 0 && v != 1 {
			return false
		}
	}

	return true
}

// arrayLike accepts tensors and Go slices/arrays, rejecting bare scalars.
func arrayLike(x any) bool {
	if isNil(x) {
		return false
	}
	if _, ok := x.(interface{ Float64s() []float64 }); ok {
		return true
	}
	k := reflect.ValueOf(x).Kind()

	return k == reflect.Slice || k == reflect.Array
}

// Seed reseeds the space's source. nil draws fresh entropy; an integer must
// be non-negative. The report carries the seed that was applied.
func (mb *MultiBinary) Seed(seed any) (SeedReport, error) {
	if isNil(seed) {
		return SeedReport{Seed: mb.reseed(nil)}, nil
	}
	s, ok := integerSeed(seed)
	if !ok {
		return SeedReport{}, spaceErrorf(ctxMBSeed, fmt.Errorf("expected seed type: int or nil, actual type: %T: %w", seed, ErrTypeShapeMismatch))
	}
	if s < 0 {
		return SeedReport{}, spaceErrorf(ctxMBSeed, fmt.Errorf("seed must be non-negative, got %d: %w", s, ErrInvalidArgument))
	}

	return SeedReport{Seed: mb.reseed(&s)}, nil
}

// ToJSONable returns the batch as nested []any of ints: the batch axis first,
// then one level per array axis.
func (mb *MultiBinary) ToJSONable(samples []any) (any, error) {
	out := make([]any, len(samples))
	for i, s := range samples {
		arr, err := tensor.FromNested[int8](s)
		if err != nil {
			return nil, spaceErrorf(ctxMBToJSON, fmt.Errorf("sample %d: %w", i, err))
		}
		if !slices.Equal(arr.Shape(), mb.n) {
			return nil, spaceErrorf(ctxMBToJSON, fmt.Errorf("sample %d has shape %v, want %v: %w", i, arr.Shape(), mb.n, ErrTypeShapeMismatch))
		}
		out[i] = arr.ToNested()
	}

	return out, nil
}

// FromJSONable converts a sequence of nested integer sequences back to
// *tensor.Dense[int8] members.
func (mb *MultiBinary) FromJSONable(data any) ([]any, error) {
	items, ok := sequenceItems(data)
	if !ok {
		return nil, spaceErrorf(ctxMBFromJSON, fmt.Errorf("expected a sequence, actual type: %T: %w", data, ErrTypeShapeMismatch))
	}
	out := make([]any, len(items))
	for i, item := range items {
		arr, err := tensor.FromNested[int8](item)
		if err != nil {
			return nil, spaceErrorf(ctxMBFromJSON, fmt.Errorf("sample %d: %w", i, err))
		}
		out[i] = arr
	}

	return out, nil
}

// Equal reports whether other is a MultiBinary with the same n, in the same
// form (flat integer vs. sequence).
func (mb *MultiBinary) Equal(other Space) bool {
	o, ok := other.(*MultiBinary)
	if !ok || o == nil {
		return false
	}

	return mb.flat == o.flat && slices.Equal(mb.n, o.n)
}

// String renders "MultiBinary(5)" or "MultiBinary((3, 2))".
func (mb *MultiBinary) String() string {
	if mb.flat {
		return "MultiBinary(" + strconv.Itoa(mb.n[0]) + ")"
	}
	parts := make([]string, len(mb.n))
	for i, v := range mb.n {
		parts[i] = strconv.Itoa(v)
	}
	tuple := strings.Join(parts, ", ")
	if len(parts) == 1 {
		tuple += ","
	}

	return "MultiBinary((" + tuple + "))"
}
