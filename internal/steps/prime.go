package steps

import (
	"fmt"
	"math"
	"strconv"
)

// CheckPrimality runs trial division for n and records one step per divisor
// from 2 to floor(sqrt(n)), stopping at the first divisor that divides n.
// TimeTakenMs is left for the caller to fill in.
//
// n = 2 and n = 3 have no candidate divisors and come back prime with no steps.
// n < 2 is never prime and also produces no steps.
func CheckPrimality(n int64) PrimeResult {
	result := PrimeResult{Number: n, Steps: []PrimeStep{}}
	if n < 2 {
		result.Message = fmt.Sprintf("%d is not a prime number.", n)
		return result
	}

	limit := ISqrt(n)
	for d := int64(2); d <= limit; d++ {
		rem := n % d
		match := rem == 0

		status := fmt.Sprintf("Not divisible by %d", d)
		if match {
			status = "Found divisor: not prime"
		}
		result.Steps = append(result.Steps, PrimeStep{
			Divisor:    d,
			Expression: fmt.Sprintf("%d %% %d", n, d),
			Result:     strconv.FormatInt(rem, 10),
			IsMatch:    match,
			Status:     status,
		})
		if match {
			break
		}
	}

	_, found := result.MatchedDivisor()
	result.IsPrime = !found
	if result.IsPrime {
		result.Message = fmt.Sprintf("%d is a prime number.", n)
	} else {
		result.Message = fmt.Sprintf("%d is not a prime number.", n)
	}
	return result
}

// ISqrt returns floor(sqrt(n)) for n >= 0, correcting float rounding.
func ISqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	r := int64(math.Sqrt(float64(n)))
	// Compare by division so squaring never overflows near MaxInt64.
	for r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
