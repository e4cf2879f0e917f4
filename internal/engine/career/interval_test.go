package career

import (
	"reflect"
	"testing"
)

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{"empty", nil, []Interval{}},
		{"single", []Interval{{1, 5}}, []Interval{{1, 5}}},
		{"disjoint", []Interval{{10, 12}, {1, 5}}, []Interval{{1, 5}, {10, 12}}},
		{"overlap", []Interval{{1, 5}, {3, 8}}, []Interval{{1, 8}}},
		{"touching", []Interval{{1, 5}, {5, 8}}, []Interval{{1, 8}}},
		{"one apart", []Interval{{1, 5}, {6, 8}}, []Interval{{1, 5}, {6, 8}}},
		{"contained", []Interval{{1, 10}, {2, 3}, {4, 5}}, []Interval{{1, 10}}},
		{"chain", []Interval{{7, 9}, {1, 3}, {3, 7}}, []Interval{{1, 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeIntervals(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeIntervals(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeIntervals_DoesNotModifyInput(t *testing.T) {
	in := []Interval{{10, 12}, {1, 5}}
	MergeIntervals(in)
	if in[0] != (Interval{10, 12}) {
		t.Errorf("input reordered: %v", in)
	}
}

func TestTotalMonths(t *testing.T) {
	if got := TotalMonths([]Interval{{0, 12}, {24, 30}}); got != 18 {
		t.Errorf("TotalMonths = %d, want 18", got)
	}
	if got := TotalMonths(nil); got != 0 {
		t.Errorf("TotalMonths(nil) = %d, want 0", got)
	}
}

func TestMonthIndex(t *testing.T) {
	if MonthIndex(2020, 1)-MonthIndex(2019, 12) != 1 {
		t.Error("December to January should be one month apart")
	}
	e := exp(1, "Acme Corp", 2019, 1, 2019, 1)
	e.EndMonth = nil
	if end, ok := e.EndIndex(); !ok || end != MonthIndex(2019, 12) {
		t.Errorf("EndIndex = %d, %v; want %d, true", end, ok, MonthIndex(2019, 12))
	}
	ongoing := exp(2, "Acme Corp", 2019, 1, 0, 0)
	if _, ok := ongoing.EndIndex(); ok {
		t.Error("ongoing experience should report no end")
	}
	if got := ongoing.EndIndexAt(fixedNow); got != MonthIndex(2026, 10) {
		t.Errorf("EndIndexAt = %d, want %d", got, MonthIndex(2026, 10))
	}
}
