package metrics_test

import (
	"testing"

	"github.com/tatolab/streamrt/metrics"
)

func TestProcessorMetricsSnapshot(t *testing.T) {
	pm := metrics.NewProcessorMetrics()
	pm.Processed.Inc()
	pm.Processed.Inc()
	pm.Errors.Inc()

	snap := pm.Snapshot()
	if snap["processed"].(int64) != 2 {
		t.Fatalf("expected processed == 2, got %v", snap["processed"])
	}
	if snap["errors"].(int64) != 1 {
		t.Fatalf("expected errors == 1, got %v", snap["errors"])
	}
}

func TestPrometheusVectorsAcceptLabels(t *testing.T) {
	// Exercises that the label sets declared in metrics.go actually match
	// what call sites pass — a label-count mismatch panics at call time,
	// not at compile time, so this is the only way to catch it without
	// running the full pipeline.
	metrics.FramesDropped.WithLabelValues("link-1", "video").Inc()
	metrics.BufferFillLevel.WithLabelValues("link-1").Set(3)
	metrics.ProcessorErrors.WithLabelValues("proc-1").Inc()
	metrics.ProcessorLoopIterations.WithLabelValues("proc-1", "continuous").Inc()
	metrics.FanOutFailures.WithLabelValues("proc-1", "out").Inc()
}
