// Package models defines the wire types of the /v1 calculation API.
// Temporal values travel as canonical literals ("2024-06-01",
// "10:30:00", "2024-06-01T10:30", "2024-06-01T10:30+02:00"); the service
// detects the type from the shape.
package models

// ShiftRequest moves a value by a signed number of units (plus, minus).
// An absent chronology means ISO.
type ShiftRequest struct {
	Value      string `json:"value"`
	Amount     int64  `json:"amount"`
	Unit       string `json:"unit"`
	Chronology string `json:"chronology,omitempty"`
}

// WithRequest sets one field to an absolute value, validated against the
// field's range in the value's context.
type WithRequest struct {
	Value      string `json:"value"`
	Field      string `json:"field"`
	NewValue   int64  `json:"new_value"`
	Chronology string `json:"chronology,omitempty"`
}

// RollRequest circles one field by a signed amount. The value wraps
// within the field's contextual range; no coarser field moves.
type RollRequest struct {
	Value      string `json:"value"`
	Field      string `json:"field"`
	Amount     int64  `json:"amount"`
	Chronology string `json:"chronology,omitempty"`
}

// TruncateRequest zeroes every component finer than the unit.
type TruncateRequest struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// UntilRequest measures the signed number of complete units from start
// to end. Both ends must be the same temporal type.
type UntilRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Unit  string `json:"unit"`
}

// Offset conversion modes.
const (
	// ModeSameLocal keeps the wall-clock fields; the value names a
	// different instant afterwards.
	ModeSameLocal = "same_local"
	// ModeSameInstant keeps the instant and recomputes the wall clock.
	ModeSameInstant = "same_instant"
)

// ConvertOffsetRequest re-anchors an offset date-time to a new offset.
type ConvertOffsetRequest struct {
	Value  string `json:"value"`
	Offset string `json:"offset"`
	Mode   string `json:"mode"`
}

// ValidateDateRequest checks a year/month/day triple under a chronology.
type ValidateDateRequest struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Chronology string `json:"chronology,omitempty"`
}
