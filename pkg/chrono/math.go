package chrono

import (
	"math"

	dErrors "tempus/pkg/domain-errors"
)

// floorDiv returns the largest integer q such that q*b <= a, for b > 0.
// Go's native division truncates toward zero, which is wrong for the
// negative side of epoch-based math.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns a - floorDiv(a, b)*b; always in [0, b) for b > 0.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((a < 0) != (b < 0)) {
		r += b
	}
	return r
}

// safeAdd adds two int64 values, failing with a coded overflow error instead
// of wrapping.
func safeAdd(a, b int64) (int64, error) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, dErrors.Newf(dErrors.CodeOverflow, "addition of %d and %d overflows int64", a, b)
	}
	return sum, nil
}

// safeMultiply multiplies two int64 values with overflow detection.
func safeMultiply(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// MinInt64 * -1 would also panic the division check below.
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, dErrors.Newf(dErrors.CodeOverflow, "multiplication of %d and %d overflows int64", a, b)
	}
	product := a * b
	if product/b != a {
		return 0, dErrors.Newf(dErrors.CodeOverflow, "multiplication of %d and %d overflows int64", a, b)
	}
	return product, nil
}
