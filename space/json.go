// SPDX-License-Identifier: MIT

package space

import (
	"encoding/json"
	"fmt"
)

// MarshalBatch encodes a batch of members of sp as JSON via ToJSONable.
func MarshalBatch(sp Space, samples []any) ([]byte, error) {
	j, err := sp.ToJSONable(samples)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("MarshalBatch: %w", err)
	}

	return data, nil
}

// UnmarshalBatch decodes JSON produced by MarshalBatch back into members of sp.
func UnmarshalBatch(sp Space, data []byte) ([]any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("UnmarshalBatch: %w", err)
	}

	return sp.FromJSONable(raw)
}
