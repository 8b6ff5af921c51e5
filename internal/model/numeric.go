package model

import (
	"strconv"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// BigDecimal is a decimal number carried as its string form. Chain amounts
// are u64/u128 magnitudes that overflow int64, so they travel as strings end
// to end and map onto NUMERIC columns; arithmetic goes through
// shopspring/decimal only where a fold needs it.
type BigDecimal string

// ZeroDecimal is the canonical zero value for stored decimal columns.
const ZeroDecimal BigDecimal = "0"

// String returns the decimal text, mapping an absent value to "0" so it
// can bind to a NUMERIC column.
func (d BigDecimal) String() string {
	if d == "" {
		return "0"
	}
	return string(d)
}

func (d BigDecimal) decimal() decimal.Decimal {
	// Absent values are zero, not degradation; only malformed text counts
	// as a fallback.
	if d == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(string(d))
	if err != nil {
		countFallback()
		return decimal.Zero
	}
	return v
}

// Add returns d + other with full decimal precision.
func (d BigDecimal) Add(other BigDecimal) BigDecimal {
	return BigDecimal(d.decimal().Add(other.decimal()).String())
}

// Cmp compares d with other numerically: -1, 0 or 1.
func (d BigDecimal) Cmp(other BigDecimal) int {
	return d.decimal().Cmp(other.decimal())
}

// Sign returns the numeric sign of d: -1, 0 or 1.
func (d BigDecimal) Sign() int {
	return d.decimal().Sign()
}

// parseFallbacks counts malformed numeric fields absorbed into defaults, so
// a run can report how much of the stream was degraded instead of failing
// silently.
var parseFallbacks atomic.Int64

func countFallback() { parseFallbacks.Add(1) }

// FallbackCount returns the number of numeric parse fallbacks taken so far
// in this process.
func FallbackCount() int64 { return parseFallbacks.Load() }

// ParseInt64 parses a chain numeric string, falling back to def on any
// malformed value. Fallbacks are counted, never fatal.
func ParseInt64(s string, def int64) int64 {
	if s == "" {
		countFallback()
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		countFallback()
		return def
	}
	return v
}

// ParseInt32 is ParseInt64 for 32-bit columns.
func ParseInt32(s string, def int32) int32 {
	if s == "" {
		countFallback()
		return def
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		countFallback()
		return def
	}
	return int32(v)
}
