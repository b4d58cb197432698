package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDocument stores an opaque JSON payload in a jsonb column. The document
// is the authoritative plan body; sibling relational columns are denormalized
// copies kept for filtering and ordering.
type JSONDocument json.RawMessage

// Value marshals the document for storage.
func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	if !json.Valid(d) {
		return nil, fmt.Errorf("json document: invalid payload")
	}
	return string(d), nil
}

// Scan decodes the stored jsonb value.
func (d *JSONDocument) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("json document: unsupported source type %T", value)
	}
	return nil
}

// MarshalJSON writes the raw document unchanged.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON keeps the raw bytes as-is.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	if d == nil {
		return fmt.Errorf("json document: nil receiver")
	}
	*d = append((*d)[:0], data...)
	return nil
}

// GormDataType maps the document to jsonb.
func (JSONDocument) GormDataType() string {
	return "jsonb"
}
