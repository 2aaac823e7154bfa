package utils

import "math"

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}

// ValueOr dereferences p, or returns def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// FiniteInt64 converts a provider float into a nullable integer column value.
// NaN and ±Inf become nil, as do values outside the int64 range.
func FiniteInt64(v float64) *int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return nil
	}
	i := int64(v)
	return &i
}

// FiniteFloat64 returns nil for NaN and ±Inf.
func FiniteFloat64(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
