// Package perfcapture writes the headless perf-capture jsonl trace format
// described in spec.md §6: one JSON object per line, each carrying a span
// name, a monotonic start timestamp, a duration, an iteration counter, and
// arbitrary extra fields. Grounded on
// original_source/src/perf.rs's span-log format (TRACKED_SPANS,
// parse_span_stats reading one JSON object per line with a span name and
// duration), reauthored as a writer rather than the Rust original's
// reader/aggregator, since this repo's headless mode is the producer side.
package perfcapture

import (
	"encoding/json"
	"io"
	"time"
)

// Span names this repo instruments during headless capture, mirroring the
// original's TRACKED_SPANS so any downstream tooling built against that
// naming convention keeps working.
const (
	SpanCollectorRefresh   = "collector.refresh"
	SpanComputeLayout      = "app.compute_layout"
	SpanTreemapRender      = "ui.treemap_widget.render"
)

// Record is one jsonl line (spec.md §6 "perf capture file format").
type Record struct {
	Span       string                 `json:"span"`
	StartUS    uint64                 `json:"start_us"`
	DurationUS uint64                 `json:"duration_us"`
	Iteration  uint32                 `json:"iteration"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// Recorder writes Records as they complete. It is not safe for concurrent
// use from multiple goroutines; the event loop that drives it is already
// single-threaded (spec.md §5).
type Recorder struct {
	enc       *json.Encoder
	iteration uint32
}

// NewRecorder wraps w as a jsonl sink.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w)}
}

// SetIteration records which perf-capture iteration subsequent spans
// belong to.
func (r *Recorder) SetIteration(n uint32) { r.iteration = n }

// Span times fn and emits one Record for it. startUS is the caller's
// monotonic clock reading at call time, in microseconds.
func (r *Recorder) Span(name string, startUS uint64, fn func()) error {
	begin := time.Now()
	fn()
	elapsed := time.Since(begin)
	return r.enc.Encode(Record{
		Span:       name,
		StartUS:    startUS,
		DurationUS: uint64(elapsed.Microseconds()),
		Iteration:  r.iteration,
	})
}

// Emit writes a single pre-built Record, for callers that already have a
// duration in hand (e.g. a span measured outside this package).
func (r *Recorder) Emit(rec Record) error {
	rec.Iteration = r.iteration
	return r.enc.Encode(rec)
}
