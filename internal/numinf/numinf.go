// Package numinf implements a signed integer that saturates to a
// distinguished positive-infinity value instead of overflowing.
package numinf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberOrInf is either a finite signed count or positive infinity.
// Zero value is Finite(0).
type NumberOrInf struct {
	inf bool
	n   int64
}

// Inf is positive infinity.
var Inf = NumberOrInf{inf: true}

// Finite builds a finite value.
func Finite(n int64) NumberOrInf {
	return NumberOrInf{n: n}
}

// IsInf reports whether the value is positive infinity.
func (v NumberOrInf) IsInf() bool { return v.inf }

// Int returns the finite value and true, or (0, false) if v is Inf.
func (v NumberOrInf) Int() (int64, bool) {
	if v.inf {
		return 0, false
	}
	return v.n, true
}

// Cmp gives a total order: every finite value is less than Inf.
func (v NumberOrInf) Cmp(other NumberOrInf) int {
	switch {
	case v.inf && other.inf:
		return 0
	case v.inf:
		return 1
	case other.inf:
		return -1
	case v.n < other.n:
		return -1
	case v.n > other.n:
		return 1
	default:
		return 0
	}
}

// Less reports v < other.
func (v NumberOrInf) Less(other NumberOrInf) bool { return v.Cmp(other) < 0 }

// Add returns v+other, saturating to Inf on either operand being Inf or
// on int64 overflow.
func (v NumberOrInf) Add(other NumberOrInf) NumberOrInf {
	if v.inf || other.inf {
		return Inf
	}
	sum := v.n + other.n
	if (other.n > 0 && sum < v.n) || (other.n < 0 && sum > v.n) {
		return Inf
	}
	return Finite(sum)
}

// SatDec returns v-1, floored at 0; Inf decrements to Inf. Used for
// recursion-depth accounting where depth never goes negative.
func (v NumberOrInf) SatDec() NumberOrInf {
	if v.inf {
		return Inf
	}
	if v.n <= 0 {
		return Finite(0)
	}
	return Finite(v.n - 1)
}

// String renders "inf" or the decimal value.
func (v NumberOrInf) String() string {
	if v.inf {
		return "inf"
	}
	return strconv.FormatInt(v.n, 10)
}

// Parse reads "inf" (case-insensitive) or a decimal integer with an
// optional leading sign. A negative finite value is rejected by callers
// that require non-negative counts; Parse itself only rejects malformed
// text.
func Parse(s string) (NumberOrInf, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "inf") {
		return Inf, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return NumberOrInf{}, fmt.Errorf("numinf: invalid number %q: %w", s, err)
	}
	if n == math.MaxInt64 {
		return Inf, nil
	}
	return Finite(n), nil
}
