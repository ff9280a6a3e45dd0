// Package chrono implements calendar date and time values with
// field-based arithmetic: immutable LocalDate, LocalTime, LocalDateTime
// and OffsetDateTime types, a closed set of standard fields and units, and
// pluggable calendar systems (ISO and a thirteen-month Coptic view).
//
// Every operation that can fail returns an explicit error carrying a
// machine-readable code: invalid_value for out-of-range inputs,
// unsupported_field/unsupported_unit for dispatch misses, and overflow for
// arithmetic that leaves the supported range.
package chrono
