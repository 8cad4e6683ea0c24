package util

import "math/rand/v2"

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntNFunc returns a uniform integer in [0, n).
type IntNFunc func(n int) int

// RandomInRange draws uniformly from the closed range [lo, hi] using intN.
// A nil intN uses math/rand/v2.
func RandomInRange(intN IntNFunc, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if intN == nil {
		intN = rand.IntN
	}
	return lo + intN(hi-lo+1)
}
