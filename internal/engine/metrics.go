package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LoadRequests      atomic.Int64
	LoadErrors        atomic.Int64
	SnapshotFallbacks atomic.Int64
	FetchRequests     atomic.Int64
	FetchErrors       atomic.Int64
	ExportRenders     atomic.Int64
	ToolCalls         atomic.Int64
	SiteRequests      atomic.Int64
	LLMCalls          atomic.Int64
	LLMErrors         atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"load_requests", "load_errors", "snapshot_fallbacks",
	"fetch_requests", "fetch_errors",
	"export_renders", "tool_calls", "site_requests",
	"llm_calls", "llm_errors",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"load_requests":      metrics.LoadRequests.Load(),
		"load_errors":        metrics.LoadErrors.Load(),
		"snapshot_fallbacks": metrics.SnapshotFallbacks.Load(),
		"fetch_requests":     metrics.FetchRequests.Load(),
		"fetch_errors":       metrics.FetchErrors.Load(),
		"export_renders":     metrics.ExportRenders.Load(),
		"tool_calls":         metrics.ToolCalls.Load(),
		"site_requests":      metrics.SiteRequests.Load(),
		"llm_calls":          metrics.LLMCalls.Load(),
		"llm_errors":         metrics.LLMErrors.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for source/ sub-package.
func IncrLoadRequests()      { metrics.LoadRequests.Add(1) }
func IncrLoadErrors()        { metrics.LoadErrors.Add(1) }
func IncrSnapshotFallbacks() { metrics.SnapshotFallbacks.Add(1) }

// Incrementors for export/ and the servers.
func IncrExportRenders() { metrics.ExportRenders.Add(1) }
func IncrToolCalls()     { metrics.ToolCalls.Add(1) }
func IncrSiteRequests()  { metrics.SiteRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
