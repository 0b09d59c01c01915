// SPDX-License-Identifier: MIT

// Package tensor provides the homogeneous n-dimensional arrays that leaf
// spaces sample into and validate against.
//
// Dense[T] stores its elements in a flat row-major slice (offset = Σ idx[k]*stride[k])
// and carries a DType tag so callers that receive values as `any` can check the
// element type before touching the data.
//
// The package provides:
//
//   - Constructors: New (zero-filled), FromFlat (adopt a copy of a flat buffer),
//     FromNested (coerce nested Go slices or decoded JSON into an array).
//   - Safe accessors: At/Set return sentinel errors instead of panicking.
//   - Conversion back to plain nested []any (ToNested) for JSON transport.
//   - Element-wise selection (Where) used by masked sampling.
//
// Only int8 and float64 elements are supported; these are the dtypes the
// binary leaf space and its probability masks require.
package tensor
