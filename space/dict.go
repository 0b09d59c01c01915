// SPDX-License-Identifier: MIT

package space

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/lvspace/tensor"
)

// ---------- error context tags ----------

const (
	ctxNewDict      = "NewDict"
	ctxDictGet      = "Dict.Get"
	ctxDictSet      = "Dict.Set"
	ctxDictSample   = "Dict.Sample"
	ctxDictSeed     = "Dict.Seed"
	ctxDictToJSON   = "Dict.ToJSONable"
	ctxDictFromJSON = "Dict.FromJSONable"
)

// subSeedBound is the exclusive upper bound of the per-child seeds a Dict
// derives from an integer seed.
const subSeedBound = math.MaxInt32

// Dict is a composite space: an ordered mapping from string keys to child
// spaces. Its members are map[string]any with one member per child.
//
// Key order is load-bearing: it drives seed derivation, jsonable layout,
// flattening, String and Equal (which is order-sensitive).
//
// A Dict owns its children by reference and is mutable through Set; it is
// not safe to alias a Dict between trees that are mutated independently.
type Dict struct {
	base
	keys   []string         // stored key order
	spaces map[string]Space // key -> child
}

var _ Space = (*Dict)(nil)

// NewDict creates a composite space.
//
// spaces is one of:
//   - map[string]Space: an unordered mapping; keys are stored sorted, which
//     keeps flattening deterministic across runs.
//   - []Pair: ordered pairs; insertion order is kept. A repeated key keeps
//     its first position and its last space.
//   - nil: no children from the mapping.
//
// WithSpace options are merged afterwards in declaration order. WithSeed is
// applied last, through Seed.
//
// Errors:
//   - ErrTypeShapeMismatch for any other type of spaces.
//   - ErrDuplicateKey when a WithSpace key is already present.
//   - ErrNotASpace when a child is nil, naming the key.
func NewDict(spaces any, opts ...Option) (*Dict, error) {
	d := &Dict{spaces: make(map[string]Space)}

	switch src := spaces.(type) {
	case nil:
	case map[string]Space:
		d.keys = make([]string, 0, len(src))
		for k := range src {
			d.keys = append(d.keys, k)
		}
		slices.Sort(d.keys)
		for _, k := range d.keys {
			d.spaces[k] = src[k]
		}
	case []Pair:
		for _, p := range src {
			d.put(p.Key, p.Space)
		}
	default:
		return nil, spaceErrorf(ctxNewDict, fmt.Errorf("unexpected Dict space input, expecting map[string]Space, []Pair or nil, actual type: %T: %w", spaces, ErrTypeShapeMismatch))
	}

	o := gatherOptions(opts)
	for _, p := range o.children {
		if _, ok := d.spaces[p.Key]; ok {
			return nil, keyErrorf(ctxNewDict, p.Key, fmt.Errorf("keyword already exists in the spaces mapping: %w", ErrDuplicateKey))
		}
		d.put(p.Key, p.Space)
	}

	for _, k := range d.keys {
		if sp := d.spaces[k]; isNil(sp) {
			return nil, keyErrorf(ctxNewDict, k, fmt.Errorf("element is not a space, actual type: %T: %w", sp, ErrNotASpace))
		}
	}

	if src, ok := o.seed.(RandomSource); ok && !isNil(src) {
		d.rng = src
		if _, err := d.seedChildren(src); err != nil {
			return nil, spaceErrorf(ctxNewDict, err)
		}
	} else if o.seed != nil {
		if _, err := d.Seed(o.seed); err != nil {
			return nil, spaceErrorf(ctxNewDict, err)
		}
	}

	return d, nil
}

// put stores sp under key, appending key to the order if it is new.
func (d *Dict) put(key string, sp Space) {
	if _, ok := d.spaces[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.spaces[key] = sp
}

// Shape is nil: no single array describes a Dict member.
func (d *Dict) Shape() []int { return nil }

// DType is tensor.Invalid: no single element type describes a Dict member.
func (d *Dict) DType() tensor.DType { return tensor.Invalid }

// IsFlattenable reports whether every child is flattenable.
func (d *Dict) IsFlattenable() bool {
	for _, k := range d.keys {
		if !d.spaces[k].IsFlattenable() {
			return false
		}
	}

	return true
}

// Len returns the number of children.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the child keys in stored order.
func (d *Dict) Keys() []string { return slices.Clone(d.keys) }

// All iterates over (key, child) in stored order.
func (d *Dict) All() iter.Seq2[string, Space] {
	return func(yield func(string, Space) bool) {
		for _, k := range d.keys {
			if !yield(k, d.spaces[k]) {
				return
			}
		}
	}
}

// Get returns the child stored under key, or ErrKeyNotFound.
func (d *Dict) Get(key string) (Space, error) {
	sp, ok := d.spaces[key]
	if !ok {
		return nil, keyErrorf(ctxDictGet, key, ErrKeyNotFound)
	}

	return sp, nil
}

// Set stores sp under key, replacing an existing child in place or appending
// a new key at the end of the order. A nil sp is ErrNotASpace.
//
// Set mutates the Dict in place: every holder of this Dict observes the change.
func (d *Dict) Set(key string, sp Space) error {
	if isNil(sp) {
		return keyErrorf(ctxDictSet, key, fmt.Errorf("value is not a space, actual type: %T: %w", sp, ErrNotASpace))
	}
	d.put(key, sp)

	return nil
}

// sameKeys reports whether m has exactly the Dict's key set.
func (d *Dict) sameKeys(m map[string]any) bool {
	if len(m) != len(d.keys) {
		return false
	}
	for _, k := range d.keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}

	return true
}

// keyList renders the keys of m in sorted order for error messages.
func keyList(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// Sample draws one member: a map holding one sample per child.
//
// WithMask(m) and WithProbability(p) take a map with exactly the Dict's keys
// (map[string]any, or any map keyed by string); each entry is forwarded to
// the matching child as that child's own mask or probability.
//
// Errors:
//   - ErrInvalidArgument when both constraints are given.
//   - ErrTypeShapeMismatch when a constraint is not a string-keyed map.
//   - ErrKeySetMismatch when its keys differ from the Dict's keys.
//   - any child error, wrapped with the child's key.
func (d *Dict) Sample(opts ...SampleOption) (any, error) {
	so, err := gatherSampleOptions(opts)
	if err != nil {
		return nil, spaceErrorf(ctxDictSample, err)
	}

	var (
		constraint map[string]any
		forward    func(any) SampleOption
	)
	switch {
	case so.mask != nil:
		if constraint, err = d.constraintMap("mask", so.mask); err != nil {
			return nil, spaceErrorf(ctxDictSample, err)
		}
		forward = WithMask
	case so.probability != nil:
		if constraint, err = d.constraintMap("probability", so.probability); err != nil {
			return nil, spaceErrorf(ctxDictSample, err)
		}
		forward = WithProbability
	}

	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		var childOpts []SampleOption
		if forward != nil {
			childOpts = append(childOpts, forward(constraint[k]))
		}
		v, err := d.spaces[k].Sample(childOpts...)
		if err != nil {
			return nil, keyErrorf(ctxDictSample, k, err)
		}
		out[k] = v
	}

	return out, nil
}

func (d *Dict) constraintMap(name string, v any) (map[string]any, error) {
	m, ok := stringMap(v)
	if !ok {
		return nil, fmt.Errorf("expected sample %s to be a map keyed by string, actual type: %T: %w", name, v, ErrTypeShapeMismatch)
	}
	if !d.sameKeys(m) {
		return nil, fmt.Errorf("expected sample %s keys to be same as space keys, %s keys: %v, space keys: %v: %w",
			name, name, keyList(m), d.keys, ErrKeySetMismatch)
	}

	return m, nil
}

// Seed seeds every child. The accepted forms are:
//   - nil: every child is reseeded from fresh entropy.
//   - a non-negative integer: the Dict's own source is seeded with it, then
//     one sub-seed in [0, MaxInt32) is drawn per child in stored order.
//     Distinct children may, rarely, draw the same sub-seed.
//   - a map with exactly the Dict's keys: each entry is forwarded verbatim
//     to the matching child (an integer, nil, or a nested map for a Dict child).
//
// The report maps every key to its child's report.
//
// Errors:
//   - ErrKeySetMismatch for a map whose keys differ from the Dict's keys.
//   - ErrTypeShapeMismatch for any other seed type.
//   - ErrInvalidArgument for a negative integer.
//   - any child error, wrapped with the child's key.
func (d *Dict) Seed(seed any) (SeedReport, error) {
	report := SeedReport{Children: make(map[string]SeedReport, len(d.keys))}

	if isNil(seed) {
		for _, k := range d.keys {
			r, err := d.spaces[k].Seed(nil)
			if err != nil {
				return SeedReport{}, keyErrorf(ctxDictSeed, k, err)
			}
			report.Children[k] = r
		}
		return report, nil
	}

	if s, ok := integerSeed(seed); ok {
		if s < 0 {
			return SeedReport{}, spaceErrorf(ctxDictSeed, fmt.Errorf("seed must be non-negative, got %d: %w", s, ErrInvalidArgument))
		}
		d.reseed(&s)
		return d.seedChildren(d.RNG())
	}

	if m, ok := stringMap(seed); ok {
		if !d.sameKeys(m) {
			return SeedReport{}, spaceErrorf(ctxDictSeed, fmt.Errorf("the seed keys: %v are not identical to space keys: %v: %w", keyList(m), d.keys, ErrKeySetMismatch))
		}
		for _, k := range d.keys {
			r, err := d.spaces[k].Seed(m[k])
			if err != nil {
				return SeedReport{}, keyErrorf(ctxDictSeed, k, err)
			}
			report.Children[k] = r
		}
		return report, nil
	}

	return SeedReport{}, spaceErrorf(ctxDictSeed, fmt.Errorf("expected seed type: map, int or nil, actual type: %T: %w", seed, ErrTypeShapeMismatch))
}

// seedChildren draws one sub-seed in [0, MaxInt32) per child from rng, in
// stored order, and seeds the children with them.
func (d *Dict) seedChildren(rng RandomSource) (SeedReport, error) {
	report := SeedReport{Children: make(map[string]SeedReport, len(d.keys))}
	for _, k := range d.keys {
		sub := int64(rng.IntN(subSeedBound))
		r, err := d.spaces[k].Seed(sub)
		if err != nil {
			return SeedReport{}, keyErrorf(ctxDictSeed, k, err)
		}
		report.Children[k] = r
	}

	return report, nil
}

// Contains reports whether x is a string-keyed map with exactly the Dict's
// keys whose every value is contained in the matching child.
func (d *Dict) Contains(x any) bool {
	m, ok := stringMap(x)
	if !ok || !d.sameKeys(m) {
		return false
	}
	for _, k := range d.keys {
		if !d.spaces[k].Contains(m[k]) {
			return false
		}
	}

	return true
}

// ToJSONable transposes a batch of per-sample maps into columns: the result
// maps every key to the child's jsonable form of that key's values.
func (d *Dict) ToJSONable(samples []any) (any, error) {
	rows := make([]map[string]any, len(samples))
	for i, s := range samples {
		m, ok := stringMap(s)
		if !ok {
			return nil, spaceErrorf(ctxDictToJSON, fmt.Errorf("sample %d: expected a map keyed by string, actual type: %T: %w", i, s, ErrTypeShapeMismatch))
		}
		rows[i] = m
	}

	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		column := make([]any, len(rows))
		for i, row := range rows {
			v, ok := row[k]
			if !ok {
				return nil, keyErrorf(ctxDictToJSON, k, fmt.Errorf("missing in sample %d: %w", i, ErrKeySetMismatch))
			}
			column[i] = v
		}
		j, err := d.spaces[k].ToJSONable(column)
		if err != nil {
			return nil, keyErrorf(ctxDictToJSON, k, err)
		}
		out[k] = j
	}

	return out, nil
}

// FromJSONable transposes columns back into a batch of per-sample maps.
//
// data must map exactly the Dict's keys to each child's jsonable batch.
// Every child must decode to the same number of samples; otherwise the
// result would be silently truncated, so ErrBatchSizeMismatch is returned.
func (d *Dict) FromJSONable(data any) ([]any, error) {
	m, ok := stringMap(data)
	if !ok {
		return nil, spaceErrorf(ctxDictFromJSON, fmt.Errorf("expected a map keyed by string, actual type: %T: %w", data, ErrTypeShapeMismatch))
	}
	if !d.sameKeys(m) {
		return nil, spaceErrorf(ctxDictFromJSON, fmt.Errorf("data keys: %v, space keys: %v: %w", keyList(m), d.keys, ErrKeySetMismatch))
	}

	columns := make(map[string][]any, len(d.keys))
	batch := -1
	for _, k := range d.keys {
		col, err := d.spaces[k].FromJSONable(m[k])
		if err != nil {
			return nil, keyErrorf(ctxDictFromJSON, k, err)
		}
		if batch < 0 {
			batch = len(col)
		} else if len(col) != batch {
			return nil, keyErrorf(ctxDictFromJSON, k, fmt.Errorf("decoded %d samples, want %d: %w", len(col), batch, ErrBatchSizeMismatch))
		}
		columns[k] = col
	}
	if batch < 0 {
		batch = 0
	}

	out := make([]any, batch)
	for i := range out {
		row := make(map[string]any, len(d.keys))
		for _, k := range d.keys {
			row[k] = columns[k][i]
		}
		out[i] = row
	}

	return out, nil
}

// Equal reports whether other is a Dict with the same keys in the same order
// and equal children. Key order is significant.
func (d *Dict) Equal(other Space) bool {
	o, ok := other.(*Dict)
	if !ok || o == nil {
		return false
	}
	if !slices.Equal(d.keys, o.keys) {
		return false
	}
	for _, k := range d.keys {
		if !d.spaces[k].Equal(o.spaces[k]) {
			return false
		}
	}

	return true
}

// String renders `Dict("a": MultiBinary(3), "b": ...)` in stored order.
func (d *Dict) String() string {
	parts := make([]string, len(d.keys))
	for i, k := range d.keys {
		parts[i] = fmt.Sprintf("%q: %s", k, d.spaces[k])
	}

	return "Dict(" + strings.Join(parts, ", ") + ")"
}
