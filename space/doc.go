// SPDX-License-Identifier: MIT

// Package space describes the legal structure of observations, actions and
// other structured array data in a reinforcement-learning environment.
//
// A Space is a typed description of a set of valid values together with
// operations to sample a random member, test membership, propagate random
// seeding, and convert batches of members to and from a JSON-safe form.
//
// Two variants are provided:
//
//	MultiBinary: leaf: fixed-shape arrays of 0/1 values (*tensor.Dense[int8]).
//	Dict       : composite: an ordered mapping from string keys to child spaces;
//	              its members are map[string]any holding one member per child.
//
// A composite delegates every per-key operation to its children; a leaf
// terminates recursion by drawing from its own RandomSource.
//
// Sampling constraints:
//
//	sp.Sample()                              // unconstrained
//	sp.Sample(space.WithMask(m))             // hard per-element mask
//	sp.Sample(space.WithProbability(p))      // per-element Bernoulli weights
//
// Supplying both a mask and a probability fails with ErrInvalidArgument.
// For a Dict, m and p are map[string]any with exactly the Dict's keys and
// each entry is forwarded verbatim to the corresponding child.
//
// Concurrency:
//
// Spaces are not safe for concurrent mutation. Each space owns its
// RandomSource, so callers sharing a space across goroutines must serialize
// Seed, Sample and Dict.Set on that space and on all of its descendants.
// A Dict holds its children by reference: do not alias a Dict (or a child of
// one) between trees that are mutated independently.
package space
