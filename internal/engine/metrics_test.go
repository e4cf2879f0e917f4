package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetricsListsEveryKey(t *testing.T) {
	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(metricKeys) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(metricKeys), out)
	}
	for i, k := range metricKeys {
		if !strings.HasPrefix(lines[i], k+" ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], k)
		}
	}
}

func TestIncrementors(t *testing.T) {
	before := GetMetrics()
	IncrLoadRequests()
	IncrSnapshotFallbacks()
	IncrToolCalls()
	IncrToolCalls()
	after := GetMetrics()

	if got := after["load_requests"] - before["load_requests"]; got != 1 {
		t.Errorf("load_requests delta = %d, want 1", got)
	}
	if got := after["snapshot_fallbacks"] - before["snapshot_fallbacks"]; got != 1 {
		t.Errorf("snapshot_fallbacks delta = %d, want 1", got)
	}
	if got := after["tool_calls"] - before["tool_calls"]; got != 2 {
		t.Errorf("tool_calls delta = %d, want 2", got)
	}
}

func TestTrackOperationPassesError(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "op", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation() = %v, want %v", err, want)
	}
}
