// SPDX-License-Identifier: MIT

// Package descriptor reads and writes space trees as YAML documents.
//
// A descriptor names the variant in `kind` and carries its parameters:
//
//	kind: dict
//	seed: 42                # optional; an integer, or a per-key map for a dict
//	spaces:                 # a YAML mapping: children stored in sorted key order
//	  flags:
//	    kind: multi_binary
//	    n: 4
//	  grid:
//	    kind: multi_binary
//	    n: [3, 2]
//
// Writing `spaces` as a YAML sequence of {key, space} entries keeps the
// children in the order written instead:
//
//	kind: dict
//	spaces:
//	  - key: grid
//	    space: {kind: multi_binary, n: [3, 2]}
//	  - key: flags
//	    space: {kind: multi_binary, n: 4}
//
// Encode always writes the sequence form so that Parse(Encode(sp)) is Equal
// to sp.
package descriptor
