package types

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"time"
)

// Store-managed record fields.
const (
	FieldID          = "id"
	FieldCreatedDate = "created_date"
	FieldUpdatedDate = "updated_date"
)

// TimeLayout is the persisted timestamp form: UTC, millisecond precision,
// lexically sortable (2024-05-01T10:00:00.000Z).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the calendar-date form used by subscription periods.
const DateLayout = time.DateOnly

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp written by FormatTime. RFC 3339 values with
// other precisions are accepted as well.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Record is one stored entity: caller fields plus the store-managed id,
// created_date and updated_date.
type Record map[string]any

// ID returns the record id. ok is false when the id is missing or is not an
// integral number.
func (r Record) ID() (int, bool) {
	return AsInt(r[FieldID])
}

// Clone returns a shallow copy. Record values are scalars, so the copy is
// independent of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// String returns the string value of key, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// AsInt converts the numeric forms a record value may take after a JSON
// round trip into an int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// Meta carries the store-managed fields embedded by every typed entity.
type Meta struct {
	ID          int    `json:"id"`
	CreatedDate string `json:"created_date"`
	UpdatedDate string `json:"updated_date"`
}

// Created parses CreatedDate.
func (m Meta) Created() (time.Time, error) {
	return ParseTime(m.CreatedDate)
}

// Updated parses UpdatedDate.
func (m Meta) Updated() (time.Time, error) {
	return ParseTime(m.UpdatedDate)
}

// ToRecord converts a typed entity into its field map through its JSON form.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling entity: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("entity is not an object: %w", err)
	}
	return r, nil
}

// FromRecord decodes a field map into a typed entity.
func FromRecord[T any](r Record) (T, error) {
	var out T
	data, err := json.Marshal(r)
	if err != nil {
		return out, fmt.Errorf("marshaling record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding record: %w", err)
	}
	return out, nil
}
