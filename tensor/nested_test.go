// SPDX-License-Identifier: MIT

package tensor_test

import (
	"encoding/json"
	"testing"

	"github.com/katalvlaran/lvspace/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFromNestedTypedSlices coerces typed Go slices of several depths.
func TestFromNestedTypedSlices(t *testing.T) {
	d, err := tensor.FromNested[int8]([]int{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, d.Shape())
	assert.Equal(t, []int8{1, 0, 1}, d.Data())

	d, err = tensor.FromNested[int8]([][]int64{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, d.Shape())
	assert.Equal(t, []int8{1, 0, 0, 1, 1, 1}, d.Data())

	d, err = tensor.FromNested[int8]([2]bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, []int8{1, 0}, d.Data())
}

// TestFromNestedJSON coerces the []any/float64 trees produced by encoding/json.
func TestFromNestedJSON(t *testing.T) {
	var raw any
	require.NoError(t, json.Unmarshal([]byte(`[[1,0],[0,1]]`), &raw))

	d, err := tensor.FromNested[int8](raw)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, d.Shape())
	assert.Equal(t, []int8{1, 0, 0, 1}, d.Data())
}

// TestFromNestedScalar turns a bare number into a 0-d array.
func TestFromNestedScalar(t *testing.T) {
	d, err := tensor.FromNested[float64](3)
	require.NoError(t, err)
	assert.Equal(t, 0, d.NDim())
	assert.Equal(t, 3.0, d.ToNested())
}

// TestFromNestedDense converts between element types.
func TestFromNestedDense(t *testing.T) {
	src := mustFlat(t, []int{2}, []float64{1, 0})
	d, err := tensor.FromNested[int8](src)
	require.NoError(t, err)
	assert.Equal(t, []int8{1, 0}, d.Data())

	_, err = tensor.FromNested[int8](mustFlat(t, []int{1}, []float64{0.5}))
	assert.ErrorIs(t, err, tensor.ErrLossyConversion)

	var nilDense *tensor.Dense[int8]
	_, err = tensor.FromNested[int8](nilDense)
	assert.ErrorIs(t, err, tensor.ErrNotNumeric)
}

// TestFromNestedErrors covers the failure sentinels.
func TestFromNestedErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want error
	}{
		{"empty", []int{}, tensor.ErrBadShape},
		{"ragged length", []any{[]int{1, 0}, []int{1}}, tensor.ErrRagged},
		{"ragged depth", []any{[]int{1, 0}, 1}, tensor.ErrRagged},
		{"string leaf", []any{"1"}, tensor.ErrNotNumeric},
		{"nil", nil, tensor.ErrNotNumeric},
		{"overflow", []int{300}, tensor.ErrLossyConversion},
		{"fraction", []float64{0.5}, tensor.ErrLossyConversion},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tensor.FromNested[int8](tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
