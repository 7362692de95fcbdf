package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a server-assigned record identifier. The backend may encode it as a
// JSON string or a JSON number; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts "7", 7 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding id %s: %w", string(b), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Record is implemented by every list entry mirrored from the API.
type Record interface {
	RecordID() ID
}
