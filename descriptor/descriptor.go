// SPDX-License-Identifier: MIT

package descriptor

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvspace/space"
)

// Space kinds understood by Parse and written by Encode.
const (
	KindMultiBinary = "multi_binary"
	KindDict        = "dict"
)

var (
	// ErrUnknownKind is returned for a descriptor whose kind is not supported.
	ErrUnknownKind = errors.New("descriptor: unknown space kind")

	// ErrMalformed is returned for YAML that does not have the descriptor layout.
	ErrMalformed = errors.New("descriptor: malformed descriptor")
)

// rawSpace is the decoding form of one descriptor node. Spaces stays a
// yaml.Node so that mapping and sequence forms can be told apart.
type rawSpace struct {
	Kind   string    `yaml:"kind"`
	N      any       `yaml:"n"`
	Seed   any       `yaml:"seed"`
	Spaces yaml.Node `yaml:"spaces"`
}

// entry is one element of the ordered sequence form of `spaces`.
type entry struct {
	Key   string    `yaml:"key"`
	Space yaml.Node `yaml:"space"`
}

// Parse builds a space tree from a YAML descriptor.
func Parse(data []byte) (space.Space, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("Parse: %w: %v", ErrMalformed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, fmt.Errorf("Parse: expected a single document: %w", ErrMalformed)
	}

	return build(root.Content[0], "$")
}

// build decodes node (found at path) into a space.
func build(node *yaml.Node, path string) (space.Space, error) {
	if err := checkFields(node, path, "kind", "n", "seed", "spaces"); err != nil {
		return nil, err
	}
	var raw rawSpace
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}
	var opts []space.Option
	if raw.Seed != nil {
		opts = append(opts, space.WithSeed(raw.Seed))
	}

	switch raw.Kind {
	case KindMultiBinary:
		if raw.N == nil {
			return nil, fmt.Errorf("%s: multi_binary requires n: %w", path, ErrMalformed)
		}
		sp, err := space.NewMultiBinary(raw.N, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return sp, nil
	case KindDict:
		children, err := buildChildren(&raw.Spaces, path)
		if err != nil {
			return nil, err
		}
		sp, err := space.NewDict(children, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return sp, nil
	default:
		return nil, fmt.Errorf("%s: %q: %w", path, raw.Kind, ErrUnknownKind)
	}
}

// buildChildren returns map[string]space.Space for the mapping form,
// []space.Pair for the sequence form, and nil when `spaces` is absent.
func buildChildren(node *yaml.Node, path string) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		children := make(map[string]space.Space, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if _, ok := children[key]; ok {
				return nil, fmt.Errorf("%s: key %q defined twice (line %d): %w", path, key, node.Content[i].Line, ErrMalformed)
			}
			child, err := build(node.Content[i+1], path+"."+key)
			if err != nil {
				return nil, err
			}
			children[key] = child
		}
		return children, nil
	case yaml.SequenceNode:
		pairs := make([]space.Pair, 0, len(node.Content))
		for i, item := range node.Content {
			if err := checkFields(item, fmt.Sprintf("%s[%d]", path, i), "key", "space"); err != nil {
				return nil, err
			}
			var e entry
			if err := item.Decode(&e); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w: %v", path, i, ErrMalformed, err)
			}
			if e.Space.Kind == 0 {
				return nil, fmt.Errorf("%s[%d]: entry requires space: %w", path, i, ErrMalformed)
			}
			child, err := build(&e.Space, path+"."+e.Key)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, space.Pair{Key: e.Key, Space: child})
		}
		return pairs, nil
	default:
		return nil, fmt.Errorf("%s: spaces must be a mapping or a sequence: %w", path, ErrMalformed)
	}
}

// checkFields rejects unknown and repeated field names in a mapping node.
// Non-mapping nodes are left to Decode to report.
func checkFields(node *yaml.Node, path string, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	seen := make(map[string]bool, len(allowed))
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if !slices.Contains(allowed, k.Value) {
			return fmt.Errorf("%s: unknown field %q (line %d), want one of %v: %w", path, k.Value, k.Line, allowed, ErrMalformed)
		}
		if seen[k.Value] {
			return fmt.Errorf("%s: field %q defined twice (line %d): %w", path, k.Value, k.Line, ErrMalformed)
		}
		seen[k.Value] = true
	}

	return nil
}

// document is the encoding form of one descriptor node.
type document struct {
	Kind   string        `yaml:"kind"`
	N      any           `yaml:"n,omitempty"`
	Spaces []encodedPair `yaml:"spaces,omitempty"`
}

type encodedPair struct {
	Key   string   `yaml:"key"`
	Space document `yaml:"space"`
}

// Encode writes sp as a YAML descriptor. Dict children are written in the
// ordered sequence form. Seeds are not part of the descriptor.
func Encode(sp space.Space) ([]byte, error) {
	doc, err := encode(sp)
	if err != nil {
		return nil, fmt.Errorf("Encode: %w", err)
	}

	return yaml.Marshal(doc)
}

func encode(sp space.Space) (document, error) {
	switch s := sp.(type) {
	case *space.MultiBinary:
		if s.IsFlat() {
			return document{Kind: KindMultiBinary, N: s.N()[0]}, nil
		}
		return document{Kind: KindMultiBinary, N: s.N()}, nil
	case *space.Dict:
		doc := document{Kind: KindDict}
		for k, child := range s.All() {
			c, err := encode(child)
			if err != nil {
				return document{}, fmt.Errorf("key %q: %w", k, err)
			}
			doc.Spaces = append(doc.Spaces, encodedPair{Key: k, Space: c})
		}
		return doc, nil
	default:
		return document{}, fmt.Errorf("%T: %w", sp, ErrUnknownKind)
	}
}
