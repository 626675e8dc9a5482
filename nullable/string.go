// Package nullable wraps database/sql null types with json/v2
// marshaling, so NULL columns round-trip as JSON null instead of a
// zero value.
package nullable

import (
	"database/sql"
	"encoding/json/v2"
)

// String scans from NULL-able text columns and marshals NULL as null.
type String struct {
	sql.NullString
}

func (n *String) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.String)
}

func (n *String) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.String = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	n.String = str
	n.Valid = true
	return nil
}

// ForceValue returns the value, "" when NULL.
func (n *String) ForceValue() string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func (n *String) IsNil() bool {
	return !n.Valid
}
