package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParentRef points at a parent category. List reads return it populated,
// write responses usually carry only the bare id.
type ParentRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("failed to decode parent id: %w", err)
		}
		p.ID = id
		return nil
	}

	type parentRef ParentRef
	var ref parentRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("failed to decode parent: %w", err)
	}
	*p = ParentRef(ref)
	return nil
}
