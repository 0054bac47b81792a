package steps

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	// MinArraySize and MaxArraySize bound the demo array length.
	MinArraySize = 5
	MaxArraySize = 20

	// DefaultArraySize is used when nothing is configured.
	DefaultArraySize = 10

	minRandomValue = 10
	maxRandomValue = 99
)

// RandomArray returns size uniform random integers in [10, 99]. A nil rng
// uses the global source.
func RandomArray(size int, rng *rand.Rand) []int {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	out := make([]int, size)
	for i := range out {
		out[i] = minRandomValue + intN(maxRandomValue-minRandomValue+1)
	}
	return out
}

// ClampArraySize forces size into [MinArraySize, MaxArraySize].
func ClampArraySize(size int) int {
	return min(max(size, MinArraySize), MaxArraySize)
}

// ParseCandidate parses user input for a primality check. It reports false for
// empty, non-numeric, or < 2 input; callers then simply don't run the check.
func ParseCandidate(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 2 {
		return 0, false
	}
	return n, true
}
