// SPDX-License-Identifier: MIT

package descriptor_test

import (
	"testing"

	"github.com/katalvlaran/lvspace/descriptor"
	"github.com/katalvlaran/lvspace/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mappingForm = `
kind: dict
spaces:
  velocity:
    kind: multi_binary
    n: 4
  grid:
    kind: multi_binary
    n: [3, 2]
  nested:
    kind: dict
    spaces:
      b: {kind: multi_binary, n: 1}
      a: {kind: multi_binary, n: 2}
`

const sequenceForm = `
kind: dict
seed: 7
spaces:
  - key: velocity
    space: {kind: multi_binary, n: 4}
  - key: grid
    space: {kind: multi_binary, n: [3, 2]}
`

// TestParseMappingSorted verifies mapping children are stored sorted.
func TestParseMappingSorted(t *testing.T) {
	sp, err := descriptor.Parse([]byte(mappingForm))
	require.NoError(t, err)

	d, ok := sp.(*space.Dict)
	require.True(t, ok)
	assert.Equal(t, []string{"grid", "nested", "velocity"}, d.Keys())

	nested, err := d.Get("nested")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, nested.(*space.Dict).Keys())

	grid, err := d.Get("grid")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, grid.Shape())
}

// TestParseSequenceOrdered verifies sequence children keep their order and the seed applies.
func TestParseSequenceOrdered(t *testing.T) {
	sp, err := descriptor.Parse([]byte(sequenceForm))
	require.NoError(t, err)
	assert.Equal(t, []string{"velocity", "grid"}, sp.(*space.Dict).Keys())

	again, err := descriptor.Parse([]byte(sequenceForm))
	require.NoError(t, err)
	x, err := sp.Sample()
	require.NoError(t, err)
	y, err := again.Sample()
	require.NoError(t, err)
	j1, _ := sp.ToJSONable([]any{x})
	j2, _ := again.ToJSONable([]any{y})
	assert.Equal(t, j1, j2, "seeded descriptors sample identically")
}

// TestParseSeedMap forwards a per-key seed map.
func TestParseSeedMap(t *testing.T) {
	sp, err := descriptor.Parse([]byte(`
kind: dict
seed: {a: 1, b: 2}
spaces:
  a: {kind: multi_binary, n: 3}
  b: {kind: multi_binary, n: 3}
`))
	require.NoError(t, err)

	ref, err := space.NewMultiBinary(3, space.WithSeed(2))
	require.NoError(t, err)
	want, _ := ref.Sample()
	x, err := sp.Sample()
	require.NoError(t, err)
	assert.Equal(t, want, x.(map[string]any)["b"])
}

// TestParseErrors covers malformed and unsupported descriptors.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown kind", "kind: box\n", descriptor.ErrUnknownKind},
		{"missing n", "kind: multi_binary\n", descriptor.ErrMalformed},
		{"bad yaml", "kind: [\n", descriptor.ErrMalformed},
		{"empty", "", descriptor.ErrMalformed},
		{"scalar spaces", "kind: dict\nspaces: 3\n", descriptor.ErrMalformed},
		{"entry without space", "kind: dict\nspaces:\n  - key: a\n", descriptor.ErrMalformed},
		{"bad n", "kind: multi_binary\nn: 0\n", space.ErrInvalidArgument},
		{"string n", "kind: multi_binary\nn: four\n", space.ErrTypeShapeMismatch},
		{"nested unknown", "kind: dict\nspaces:\n  a: {kind: discrete}\n", descriptor.ErrUnknownKind},
		{"duplicate child", "kind: dict\nspaces:\n  a: {kind: multi_binary, n: 1}\n  a: {kind: multi_binary, n: 5}\n", descriptor.ErrMalformed},
		{"duplicate field", "kind: multi_binary\nn: 1\nn: 5\n", descriptor.ErrMalformed},
		{"misspelled field", "kind: dict\nspcaes:\n  a: {kind: multi_binary, n: 1}\n", descriptor.ErrMalformed},
		{"unknown entry field", "kind: dict\nspaces:\n  - key: a\n    spce: {kind: multi_binary, n: 1}\n", descriptor.ErrMalformed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := descriptor.Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestEncodeRoundTrip ensures Parse(Encode(sp)) is Equal to sp, including key order.
func TestEncodeRoundTrip(t *testing.T) {
	inner, err := space.NewDict(map[string]space.Space{})
	require.NoError(t, err)
	flat, err := space.NewMultiBinary(4)
	require.NoError(t, err)
	grid, err := space.NewMultiBinary([]int{3, 2})
	require.NoError(t, err)
	d, err := space.NewDict([]space.Pair{
		{Key: "z", Space: flat},
		{Key: "a", Space: grid},
		{Key: "empty", Space: inner},
	})
	require.NoError(t, err)

	out, err := descriptor.Encode(d)
	require.NoError(t, err)
	back, err := descriptor.Parse(out)
	require.NoError(t, err)
	assert.True(t, d.Equal(back), "round trip of:\n%s", out)
}

// TestEncodeUnsupported rejects spaces without a descriptor kind.
func TestEncodeUnsupported(t *testing.T) {
	_, err := descriptor.Encode(nil)
	assert.ErrorIs(t, err, descriptor.ErrUnknownKind)
}
