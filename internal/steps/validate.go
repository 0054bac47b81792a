package steps

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTrace is wrapped by every validation failure.
var ErrInvalidTrace = errors.New("invalid trace")

// ValidateSortSteps checks that a received sort trace is replayable: constant
// array length, adjacent in-bounds comparisons, a monotonically growing sorted
// set, and a final step with every index sorted.
func ValidateSortSteps(trace []SortStep) error {
	if len(trace) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidTrace)
	}

	var errs []error
	n := len(trace[0].Array)
	var prev map[int]bool

	for i, s := range trace {
		if len(s.Array) != n {
			errs = append(errs, fmt.Errorf("step %d: array length %d, want %d", i, len(s.Array), n))
		}

		switch len(s.Comparing) {
		case 0:
		case 2:
			j := s.Comparing[0]
			if s.Comparing[1] != j+1 || j < 0 || j+1 >= n {
				errs = append(errs, fmt.Errorf("step %d: comparing %v is not an adjacent in-bounds pair", i, s.Comparing))
			}
		default:
			errs = append(errs, fmt.Errorf("step %d: comparing has %d indices", i, len(s.Comparing)))
		}
		if s.Swapping && len(s.Comparing) != 2 {
			errs = append(errs, fmt.Errorf("step %d: swapping without a compared pair", i))
		}
		if i > 0 {
			if err := checkTransition(trace[i-1], s, n); err != nil {
				errs = append(errs, fmt.Errorf("step %d: %w", i, err))
			}
		}

		cur := make(map[int]bool, len(s.Sorted))
		for _, idx := range s.Sorted {
			if idx < 0 || idx >= n {
				errs = append(errs, fmt.Errorf("step %d: sorted index %d out of range", i, idx))
				continue
			}
			if cur[idx] {
				errs = append(errs, fmt.Errorf("step %d: sorted index %d repeated", i, idx))
			}
			cur[idx] = true
		}
		for idx := range prev {
			if !cur[idx] {
				errs = append(errs, fmt.Errorf("step %d: index %d dropped from sorted set", i, idx))
			}
		}
		prev = cur
	}

	last := trace[len(trace)-1]
	if len(prev) != n {
		errs = append(errs, fmt.Errorf("final step sorts %d of %d indices", len(last.Sorted), n))
	}
	if !slices.IsSorted(last.Array) {
		errs = append(errs, fmt.Errorf("final array %v is not in order", last.Array))
	}
	if !sameElements(trace[0].Array, last.Array) {
		errs = append(errs, fmt.Errorf("final array %v is not a permutation of %v", last.Array, trace[0].Array))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTrace, errors.Join(errs...))
	}
	return nil
}

// checkTransition verifies that cur follows from prev: a swapping step
// exchanges its out-of-order pair, and every other step leaves the array alone.
func checkTransition(prev, cur SortStep, n int) error {
	if len(prev.Array) != n || len(cur.Array) != n {
		return nil
	}
	if !cur.Swapping {
		if !slices.Equal(prev.Array, cur.Array) {
			return fmt.Errorf("array changed from %v to %v without a swap", prev.Array, cur.Array)
		}
		return nil
	}
	if len(cur.Comparing) != 2 {
		return nil
	}
	j := cur.Comparing[0]
	if j < 0 || j+1 >= n || cur.Comparing[1] != j+1 {
		return nil
	}
	if prev.Array[j] <= prev.Array[j+1] {
		return fmt.Errorf("swapping %d and %d, which are already in order", prev.Array[j], prev.Array[j+1])
	}
	want := slices.Clone(prev.Array)
	want[j], want[j+1] = want[j+1], want[j]
	if !slices.Equal(want, cur.Array) {
		return fmt.Errorf("swap of %v gives %v, want %v", cur.Comparing, cur.Array, want)
	}
	return nil
}

func sameElements(a, b []int) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// ValidatePrimeResult checks the divisor sequence of a received primality
// result and that IsPrime agrees with it.
func ValidatePrimeResult(r PrimeResult) error {
	if r.Number < 2 {
		return fmt.Errorf("%w: number %d is below 2", ErrInvalidTrace, r.Number)
	}

	var errs []error
	limit := ISqrt(r.Number)
	matched := false

	for i, s := range r.Steps {
		want := int64(i + 2)
		if s.Divisor != want {
			errs = append(errs, fmt.Errorf("step %d: divisor %d, want %d", i, s.Divisor, want))
		}
		if s.Divisor > limit {
			errs = append(errs, fmt.Errorf("step %d: divisor %d exceeds floor(sqrt(%d)) = %d", i, s.Divisor, r.Number, limit))
		}
		if s.Divisor > 0 && s.IsMatch != (r.Number%s.Divisor == 0) {
			errs = append(errs, fmt.Errorf("step %d: isMatch=%t disagrees with %d mod %d", i, s.IsMatch, r.Number, s.Divisor))
		}
		if s.IsMatch {
			matched = true
			if i != len(r.Steps)-1 {
				errs = append(errs, fmt.Errorf("step %d: steps continue after a matching divisor", i))
			}
		}
	}

	if !matched && int64(len(r.Steps)) != max(limit-1, 0) {
		errs = append(errs, fmt.Errorf("%d steps cover divisors up to %d, want up to %d", len(r.Steps), int64(len(r.Steps))+1, limit))
	}
	if r.IsPrime == matched {
		errs = append(errs, fmt.Errorf("isPrime=%t but matching divisor found=%t", r.IsPrime, matched))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTrace, errors.Join(errs...))
	}
	return nil
}
