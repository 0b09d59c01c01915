// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvspace/space"
)

// Record is the JSON document written by `spacectl sample` and read back by
// `spacectl check`.
type Record struct {
	ID    string           `json:"id"`
	Space string           `json:"space"`
	Seed  space.SeedReport `json:"seed"`
	Batch json.RawMessage  `json:"batch"`
}

// Sample seeds sp (from fresh entropy when seed is nil), draws count members
// and packs them into a Record with a new random ID.
func Sample(sp space.Space, seed *int64, count int) (Record, error) {
	if count < 0 {
		return Record{}, fmt.Errorf("count must be non-negative, got %d", count)
	}
	var seedArg any
	if seed != nil {
		seedArg = *seed
	}
	report, err := sp.Seed(seedArg)
	if err != nil {
		return Record{}, fmt.Errorf("seed: %w", err)
	}

	samples := make([]any, count)
	for i := range samples {
		if samples[i], err = sp.Sample(); err != nil {
			return Record{}, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	batch, err := space.MarshalBatch(sp, samples)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:    uuid.NewString(),
		Space: sp.String(),
		Seed:  report,
		Batch: batch,
	}, nil
}

// Check decodes a batch and reports membership of every sample. data is
// either a Record or a bare jsonable batch. Input is read as a Record only
// when it carries all of the id, space and batch fields, so a Dict batch
// whose keys happen to include "batch" stays a bare batch.
func Check(sp space.Space, data []byte) ([]bool, error) {
	batch := data
	if rec, ok := asRecord(data); ok {
		batch = rec
	}

	samples, err := space.UnmarshalBatch(sp, batch)
	if err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	out := make([]bool, len(samples))
	for i, s := range samples {
		out[i] = sp.Contains(s)
	}

	return out, nil
}

// asRecord returns the batch field of data if data is a Record.
func asRecord(data []byte) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false
	}
	for _, name := range []string{"id", "space", "batch"} {
		if _, ok := fields[name]; !ok {
			return nil, false
		}
	}
	var id, name string
	if json.Unmarshal(fields["id"], &id) != nil || json.Unmarshal(fields["space"], &name) != nil {
		return nil, false
	}

	return fields["batch"], true
}
