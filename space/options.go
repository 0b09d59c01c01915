// SPDX-License-Identifier: MIT

// Package space: functional configuration for constructors and Sample.
//
// Design goals:
//   - No global state; every space owns its RandomSource.
//   - Constructor options are resolved once; Sample options per call.

package space

import "fmt"

// Option configures a space at construction.
type Option func(*Options)

// Options stores the effective constructor configuration after applying
// Option setters. Fields are unexported; constructors consume ...Option.
type Options struct {
	seed     any    // forwarded to Seed when non-nil
	children []Pair // keyword-style Dict children, in declaration order
}

// WithSeed seeds the space right after construction. The value takes any
// form the variant's Seed accepts: an integer for every variant, and also a
// per-key map for a Dict. A RandomSource is installed as the space's own
// source as is; a Dict then derives its children's seeds from it. A nil
// seed leaves the space lazily seeded.
func WithSeed(seed any) Option {
	return func(o *Options) { o.seed = seed }
}

// WithSpace declares a keyword-style Dict child. It is merged after the
// mapping passed to NewDict; a key present in both is ErrDuplicateKey.
// Leaf constructors reject this option with ErrInvalidArgument.
func WithSpace(key string, sp Space) Option {
	return func(o *Options) { o.children = append(o.children, Pair{Key: key, Space: sp}) }
}

func gatherOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// SampleOption constrains a single Sample call.
type SampleOption func(*sampleOptions)

type sampleOptions struct {
	mask        any
	probability any
}

// WithMask supplies a hard per-element mask. Its form is defined by the
// variant: *tensor.Dense[int8] for MultiBinary, map[string]any for Dict.
// A nil mask means unconstrained.
func WithMask(mask any) SampleOption {
	return func(o *sampleOptions) { o.mask = mask }
}

// WithProbability supplies per-element sampling weights. Its form is defined
// by the variant: *tensor.Dense[float64] for MultiBinary, map[string]any for
// Dict. A nil probability means unconstrained.
func WithProbability(p any) SampleOption {
	return func(o *sampleOptions) { o.probability = p }
}

// gatherSampleOptions resolves opts, normalizing typed nils to "absent" and
// rejecting a mask together with a probability.
func gatherSampleOptions(opts []SampleOption) (sampleOptions, error) {
	var o sampleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if isNil(o.mask) {
		o.mask = nil
	}
	if isNil(o.probability) {
		o.probability = nil
	}
	if o.mask != nil && o.probability != nil {
		return o, fmt.Errorf("only one of mask or probability can be provided, got mask=%v, probability=%v: %w",
			o.mask, o.probability, ErrInvalidArgument)
	}

	return o, nil
}
