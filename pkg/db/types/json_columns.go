package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray stores a list of strings as a JSON document. Content rows embed
// their small collections (criteria, steps) whole; they are replaced on every
// update rather than normalized out.
type StringArray []string

func (a *StringArray) Scan(src any) error {
	return scanJSON(src, a, "StringArray")
}

func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return marshalJSON(a)
}

// Attachment is an uploaded file reference embedded in a content row.
type Attachment struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// AttachmentList stores photo, video or document references as JSON.
type AttachmentList []Attachment

func (l *AttachmentList) Scan(src any) error {
	return scanJSON(src, l, "AttachmentList")
}

func (l AttachmentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return marshalJSON(l)
}

// JSONMap stores an arbitrary JSON object, used for audit payloads and the
// raw settings column.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m, "JSONMap")
}

func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return marshalJSON(m)
}

func scanJSON(src any, dst any, typeName string) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: unsupported Scan type %T", typeName, src)
	}
}

func marshalJSON(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
