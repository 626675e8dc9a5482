package nullable

import (
	"database/sql"
	"encoding/json/v2"
)

// Int scans from NULL-able integer columns and marshals NULL as null.
type Int struct {
	sql.NullInt64
}

func (n *Int) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int64)
}

func (n *Int) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.Int64 = 0
		return nil
	}
	var i int64
	if err := json.Unmarshal(data, &i); err != nil {
		return err
	}
	n.Int64 = i
	n.Valid = true
	return nil
}

// ForceValue returns the value, 0 when NULL.
func (n *Int) ForceValue() int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}

func (n *Int) IsNil() bool {
	return !n.Valid
}
