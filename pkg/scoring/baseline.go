package scoring

// Ratio normalizes a raw metric against a personal baseline. A missing or
// zero baseline yields the neutral ratio 1.0 (no deviation assumed) so that
// downstream factor math never has to handle absent reference data.
func Ratio(value, baseline float64) float64 {
	if baseline <= 0 {
		return 1.0
	}
	return value / baseline
}

// clamp bounds a score to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp100 bounds a score to the canonical [0, 100] range.
func clamp100(v float64) float64 {
	return clamp(v, 0, 100)
}
