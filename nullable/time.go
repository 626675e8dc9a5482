package nullable

import (
	"database/sql"
	"encoding/json/v2"
	"time"
)

// Time scans from NULL-able timestamp columns; JSON form is RFC 3339
// or null.
type Time struct {
	sql.NullTime
}

func (n *Time) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time.Format(time.RFC3339))
}

func (n *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.Time = time.Time{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return err
	}
	n.Time = t
	n.Valid = true
	return nil
}

// ForceValue returns the value, the zero time when NULL.
func (n *Time) ForceValue() time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return n.Time
}

func (n *Time) IsNil() bool {
	return !n.Valid
}
