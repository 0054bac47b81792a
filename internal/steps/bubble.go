package steps

import (
	"fmt"
	"slices"
)

// BubbleSort returns the full trace of an optimized bubble sort over input.
// The input slice is not modified.
//
// The trace starts with the untouched array, then for every comparison emits a
// "comparing" step followed by either a "swapping" or a "no swap" step. Each
// pass ends with a "pass complete" step that fixes index n-1-i. A pass with no
// swap ends the run early. The last step always has every index sorted.
func BubbleSort(input []int) []SortStep {
	arr := slices.Clone(input)
	n := len(arr)
	sorted := make([]bool, n)

	trace := []SortStep{
		snapshot(arr, nil, false, sorted, fmt.Sprintf("Starting bubble sort on %d elements.", n)),
	}

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			a, b := arr[j], arr[j+1]
			pair := []int{j, j + 1}

			trace = append(trace, snapshot(arr, pair, false, sorted,
				fmt.Sprintf("Comparing %d and %d. Is %d > %d?", a, b, a, b)))

			if a > b {
				arr[j], arr[j+1] = b, a
				swapped = true
				trace = append(trace, snapshot(arr, pair, true, sorted,
					fmt.Sprintf("Yes, %d > %d. Swapping them.", a, b)))
			} else {
				trace = append(trace, snapshot(arr, pair, false, sorted,
					fmt.Sprintf("No, %d <= %d. No swap needed.", a, b)))
			}
		}

		sorted[n-1-i] = true
		trace = append(trace, snapshot(arr, nil, false, sorted,
			fmt.Sprintf("Pass %d complete. %d is now in its sorted position.", i+1, arr[n-1-i])))

		if !swapped {
			// Nothing moved, so everything left of the fixed tail is in order.
			for k := 0; k < n-1-i; k++ {
				sorted[k] = true
			}
			break
		}
	}

	for k := range sorted {
		sorted[k] = true
	}
	trace = append(trace, snapshot(arr, nil, false, sorted, "Array is fully sorted!"))
	return trace
}

func snapshot(arr []int, comparing []int, swapping bool, sorted []bool, description string) SortStep {
	cmp := []int{}
	if len(comparing) > 0 {
		cmp = slices.Clone(comparing)
	}
	return SortStep{
		Array:       append([]int{}, arr...),
		Comparing:   cmp,
		Swapping:    swapping,
		Sorted:      markedIndices(sorted),
		Description: description,
	}
}

func markedIndices(marks []bool) []int {
	out := []int{}
	for i, ok := range marks {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
