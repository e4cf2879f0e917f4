package career

import "sort"

// Interval is a closed [Start, End] span in month-index units.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Months returns the elapsed months covered by the interval.
func (iv Interval) Months() int {
	return iv.End - iv.Start
}

// MergeIntervals sorts intervals by start and merges the ones that overlap
// or touch. The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// TotalMonths sums the spans of already merged intervals.
func TotalMonths(merged []Interval) int {
	total := 0
	for _, iv := range merged {
		total += iv.Months()
	}
	return total
}
