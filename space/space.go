// SPDX-License-Identifier: MIT

package space

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/katalvlaran/lvspace/tensor"
)

// Space is the contract every variant implements.
//
// Members are passed as `any`: a leaf returns its concrete array type, a
// composite returns a map[string]any of its children's members.
type Space interface {
	// Shape returns the member array shape, or nil for composites.
	Shape() []int
	// DType returns the member element type, or tensor.Invalid for composites.
	DType() tensor.DType
	// RNG returns the space's own lazily-created RandomSource.
	RNG() RandomSource

	// Sample draws one member, honoring at most one of WithMask/WithProbability.
	Sample(opts ...SampleOption) (any, error)
	// Contains reports whether x is a member. It never fails: malformed input
	// is simply not contained.
	Contains(x any) bool
	// Seed reinitializes every RandomSource owned by the space tree and reports
	// the seeds that were applied. Accepted forms depend on the variant.
	Seed(seed any) (SeedReport, error)

	// ToJSONable converts a batch of members to plain numbers, strings,
	// []any and map[string]any.
	ToJSONable(samples []any) (any, error)
	// FromJSONable converts the output of ToJSONable (or its JSON-decoded
	// form) back to a batch of members.
	FromJSONable(data any) ([]any, error)

	// IsFlattenable reports whether every member maps losslessly onto one
	// fixed-length numeric vector.
	IsFlattenable() bool
	// Equal reports structural equality; different variants are never equal.
	Equal(other Space) bool

	fmt.Stringer
}

// SeedReport records the seeds a Seed call actually applied. A leaf reports
// a single Seed; a composite reports one child report per key and mirrors
// the space tree.
type SeedReport struct {
	Seed     int64
	Children map[string]SeedReport
}

// IsComposite reports whether the report belongs to a composite space.
func (r SeedReport) IsComposite() bool { return r.Children != nil }

// MarshalJSON encodes a leaf report as a number and a composite report as an
// object of child reports.
func (r SeedReport) MarshalJSON() ([]byte, error) {
	if r.IsComposite() {
		return json.Marshal(r.Children)
	}

	return json.Marshal(r.Seed)
}

// Pair is one (key, space) entry of an ordered Dict construction.
type Pair struct {
	Key   string
	Space Space
}

// ---------- shared coercion helpers ----------

// isNil reports whether v is nil or a typed nil pointer, map, slice or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// integerSeed extracts an integer seed. Bools are not integers here.
func integerSeed(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// stringMap views any map with string keys as map[string]any.
func stringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, m != nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, true
}

// sequenceItems views any slice or array as []any.
func sequenceItems(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}
