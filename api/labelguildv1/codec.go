// Package labelguildv1 holds the wire messages of the labelguild.v1 services.
// Messages are plain structs carried by JSONCodec instead of protobuf.
package labelguildv1

import (
	"encoding/json"
	"fmt"
)

// JSONCodec replaces connect's protojson codec under the "json" name.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
