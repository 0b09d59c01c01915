// Package lvspace describes the observation and action spaces of
// reinforcement-learning environments: what a valid member looks like, how
// to draw one reproducibly, and how to move batches of members through JSON.
//
// Everything lives in subpackages:
//
//	tensor        Dense[T], a row-major n-dimensional array with safe accessors
//	space         the Space contract, MultiBinary and Dict, seeding, flattening
//	descriptor    YAML descriptors that build (and re-encode) space trees
//	cmd/spacectl  command-line sampling and membership checks
//
// Quick example:
//
//	d, _ := space.NewDict([]space.Pair{
//		{Key: "pos", Space: must(space.NewMultiBinary(4))},
//		{Key: "grid", Space: must(space.NewMultiBinary([]int{2, 2}))},
//	}, space.WithSeed(42))
//	x, _ := d.Sample()
//	d.Contains(x) // true
//
// Spaces are not safe for concurrent use: Sample and Seed mutate the
// space's random source.
package lvspace
