package chrono

import (
	"fmt"

	dErrors "tempus/pkg/domain-errors"
)

// ValueRange describes the valid values of a field: a fixed [min, max], or a
// variable upper bound where the largest valid value depends on context
// (day_of_month tops out at 28, 29, 30 or 31 depending on the month). Ranges
// drive both validation and the modulus used by roll arithmetic.
type ValueRange struct {
	min         int64
	smallestMax int64
	max         int64
}

// NewRange builds a fixed range. Panics if min > max; ranges are only ever
// constructed from calendar constants, so a bad pair is a programming error.
func NewRange(min, max int64) ValueRange {
	if min > max {
		panic(fmt.Sprintf("chrono: range min %d exceeds max %d", min, max))
	}
	return ValueRange{min: min, smallestMax: max, max: max}
}

// NewRangeSmallest builds a range whose maximum varies between smallestMax
// and max depending on context.
func NewRangeSmallest(min, smallestMax, max int64) ValueRange {
	if min > smallestMax || smallestMax > max {
		panic(fmt.Sprintf("chrono: range bounds %d/%d/%d out of order", min, smallestMax, max))
	}
	return ValueRange{min: min, smallestMax: smallestMax, max: max}
}

func (r ValueRange) Min() int64 { return r.min }

func (r ValueRange) Max() int64 { return r.max }

// SmallestMax returns the smallest maximum the field can have in any context.
func (r ValueRange) SmallestMax() int64 { return r.smallestMax }

// IsFixed reports whether every context shares the same maximum.
func (r ValueRange) IsFixed() bool { return r.smallestMax == r.max }

// IsValid reports whether v lies within the range.
func (r ValueRange) IsValid(v int64) bool { return v >= r.min && v <= r.max }

// Span returns max - min + 1, the modulus for roll arithmetic. Call only on
// ranges narrowed to a concrete context.
func (r ValueRange) Span() int64 { return r.max - r.min + 1 }

// Check validates v against the range, naming the field in the error.
func (r ValueRange) Check(f Field, v int64) (int64, error) {
	if !r.IsValid(v) {
		return 0, dErrors.Newf(dErrors.CodeInvalidValue, "value %d for %s outside range %s", v, f.Name(), r)
	}
	return v, nil
}

func (r ValueRange) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%d..%d", r.min, r.max)
	}
	return fmt.Sprintf("%d..%d/%d", r.min, r.smallestMax, r.max)
}
