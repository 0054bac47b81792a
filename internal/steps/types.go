// Package steps generates replayable execution traces for the visualized
// algorithms and validates traces received from the compute service.
package steps

// SortStep is one displayable snapshot of a bubble sort run.
type SortStep struct {
	Array       []int  `json:"array"`
	Comparing   []int  `json:"comparing"` // empty or exactly {j, j+1}
	Swapping    bool   `json:"swapping"`
	Sorted      []int  `json:"sorted"` // ascending, grows across a run
	Description string `json:"description"`
}

// SortResult is the compute service's answer to a sort request.
type SortResult struct {
	Steps       []SortStep `json:"steps"`
	TimeTakenMs int64      `json:"timeTakenMs"`
	Algorithm   string     `json:"algorithm"`
}

// PrimeStep records a single trial division.
type PrimeStep struct {
	Divisor    int64  `json:"divisor"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	IsMatch    bool   `json:"isMatch"`
	Status     string `json:"status"`
}

// PrimeResult is the compute service's answer to a primality check.
// IsPrime always equals "no step has IsMatch".
type PrimeResult struct {
	Number      int64       `json:"number"`
	IsPrime     bool        `json:"isPrime"`
	Steps       []PrimeStep `json:"steps"`
	TimeTakenMs int64       `json:"timeTakenMs"`
	Message     string      `json:"message"`
}

// AlgorithmBubbleSort is reported in SortResult.Algorithm.
const AlgorithmBubbleSort = "Bubble Sort"

// IsComplete reports whether the step marks every index as sorted.
func (s SortStep) IsComplete() bool {
	return len(s.Sorted) == len(s.Array)
}

// IsComparing reports whether idx is one of the compared positions.
func (s SortStep) IsComparing(idx int) bool {
	for _, c := range s.Comparing {
		if c == idx {
			return true
		}
	}
	return false
}

// IsSorted reports whether idx is in its final position.
func (s SortStep) IsSorted(idx int) bool {
	for _, c := range s.Sorted {
		if c == idx {
			return true
		}
	}
	return false
}

// MatchedDivisor returns the divisor that disproved primality, if any.
func (r PrimeResult) MatchedDivisor() (int64, bool) {
	for _, s := range r.Steps {
		if s.IsMatch {
			return s.Divisor, true
		}
	}
	return 0, false
}
