// SPDX-License-Identifier: MIT
// Package tensor_test contains test helpers.

package tensor_test

import (
	"testing"

	"github.com/katalvlaran/lvspace/tensor"
	"github.com/stretchr/testify/require"
)

// mustFlat builds an array from a flat buffer or fails the test.
func mustFlat[T tensor.Element](t *testing.T, shape []int, data []T) *tensor.Dense[T] {
	t.Helper()
	d, err := tensor.FromFlat(shape, data)
	require.NoError(t, err)

	return d
}
