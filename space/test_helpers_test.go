// SPDX-License-Identifier: MIT
// Package space_test contains test helpers.
//
// Purpose:
//   • Small constructors that fail the test on error, keeping test bodies focused.

package space_test

import (
	"testing"

	"github.com/katalvlaran/lvspace/space"
	"github.com/katalvlaran/lvspace/tensor"
	"github.com/stretchr/testify/require"
)

// mustMultiBinary builds a MultiBinary or fails the test.
func mustMultiBinary(t *testing.T, n any, opts ...space.Option) *space.MultiBinary {
	t.Helper()
	mb, err := space.NewMultiBinary(n, opts...)
	require.NoError(t, err)

	return mb
}

// mustDict builds a Dict or fails the test.
func mustDict(t *testing.T, spaces any, opts ...space.Option) *space.Dict {
	t.Helper()
	d, err := space.NewDict(spaces, opts...)
	require.NoError(t, err)

	return d
}

// mustArray builds a flat-backed array or fails the test.
func mustArray[T tensor.Element](t *testing.T, shape []int, data ...T) *tensor.Dense[T] {
	t.Helper()
	d, err := tensor.FromFlat(shape, data)
	require.NoError(t, err)

	return d
}

// mustSample draws one sample or fails the test.
func mustSample(t *testing.T, sp space.Space, opts ...space.SampleOption) any {
	t.Helper()
	x, err := sp.Sample(opts...)
	require.NoError(t, err)

	return x
}

// bits returns the flat data of a MultiBinary sample.
func bits(t *testing.T, x any) []int8 {
	t.Helper()
	arr, ok := x.(*tensor.Dense[int8])
	require.True(t, ok, "sample must be *tensor.Dense[int8], got %T", x)

	return arr.Data()
}

// opaqueSpace is a minimal Space with no vector form, used to exercise
// composites holding a non-flattenable child.
type opaqueSpace struct{}

func (opaqueSpace) Shape() []int                              { return nil }
func (opaqueSpace) DType() tensor.DType                       { return tensor.Invalid }
func (opaqueSpace) RNG() space.RandomSource                   { return space.NewRandomSource(0) }
func (opaqueSpace) Sample(...space.SampleOption) (any, error) { return "opaque", nil }
func (opaqueSpace) Contains(x any) bool                       { return x == "opaque" }
func (opaqueSpace) Seed(any) (space.SeedReport, error)        { return space.SeedReport{}, nil }
func (opaqueSpace) ToJSONable(samples []any) (any, error)     { return samples, nil }
func (opaqueSpace) FromJSONable(data any) ([]any, error)      { return data.([]any), nil }
func (opaqueSpace) IsFlattenable() bool                       { return false }
func (opaqueSpace) Equal(other space.Space) bool              { _, ok := other.(opaqueSpace); return ok }
func (opaqueSpace) String() string                            { return "Opaque()" }
