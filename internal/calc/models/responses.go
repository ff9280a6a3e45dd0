package models

// Kinds a computed value can come back as.
const (
	KindDate           = "date"
	KindTime           = "time"
	KindDateTime       = "date_time"
	KindOffsetDateTime = "offset_date_time"
)

// ValueResponse carries a computed temporal value as its canonical
// literal plus the kind the literal parses as.
type ValueResponse struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// AmountResponse carries a measured distance.
type AmountResponse struct {
	Amount int64  `json:"amount"`
	Unit   string `json:"unit"`
}

// FieldViolation pinpoints the component that failed validation and the
// range it had to fall in given the other components: day 31 in a
// 30-day month reports min 1, max 30.
type FieldViolation struct {
	Field string `json:"field"`
	Value int64  `json:"value"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// ValidateDateResponse is the validation verdict. Date is the canonical
// ISO literal of the day when valid; Violation explains the failure
// otherwise.
type ValidateDateResponse struct {
	Valid     bool            `json:"valid"`
	Date      string          `json:"date,omitempty"`
	Violation *FieldViolation `json:"violation,omitempty"`
}

// FieldValue is one row of a date's field breakdown, with the range the
// field has in that date's context.
type FieldValue struct {
	Field string `json:"field"`
	Value int64  `json:"value"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

// DateFieldsResponse is the full date-based field breakdown of one date
// under one chronology.
type DateFieldsResponse struct {
	Date       string       `json:"date"`
	Chronology string       `json:"chronology"`
	Fields     []FieldValue `json:"fields"`
}

// ChronologyInfo describes one registered calendar system.
type ChronologyInfo struct {
	Name           string `json:"name"`
	MonthsInYear   int    `json:"months_in_year"`
	DaysInYear     int    `json:"days_in_year"`
	DaysInLeapYear int    `json:"days_in_leap_year"`
}

// ChronologiesResponse lists the registered calendar systems.
type ChronologiesResponse struct {
	Chronologies []ChronologyInfo `json:"chronologies"`
}

// FieldInfo describes one registry field with its calendar-agnostic
// range. SmallestMax differs from Max for fields whose ceiling depends
// on context (day_of_month: 28 vs 31).
type FieldInfo struct {
	Name        string `json:"name"`
	DateBased   bool   `json:"date_based"`
	TimeBased   bool   `json:"time_based"`
	Min         int64  `json:"min"`
	SmallestMax int64  `json:"smallest_max"`
	Max         int64  `json:"max"`
}

// RegistryFieldsResponse lists the closed field set.
type RegistryFieldsResponse struct {
	Fields []FieldInfo `json:"fields"`
}

// UnitInfo describes one registry unit. The estimated span is exact for
// time-based units and a mean-year average for date-based ones.
type UnitInfo struct {
	Name             string `json:"name"`
	DateBased        bool   `json:"date_based"`
	TimeBased        bool   `json:"time_based"`
	EstimatedSeconds int64  `json:"estimated_seconds"`
	EstimatedNanos   int32  `json:"estimated_nanos"`
}

// RegistryUnitsResponse lists the closed unit set, shortest first.
type RegistryUnitsResponse struct {
	Units []UnitInfo `json:"units"`
}

// NowResponse is the current instant seen through a zone.
type NowResponse struct {
	Now           string `json:"now"`
	Zone          string `json:"zone"`
	OffsetSeconds int    `json:"offset_seconds"`
}
