package metrics

import "github.com/tatolab/streamrt/cmn/ratomic"

// ProcessorMetrics is the component.KindMetrics value attached to every
// processor entity (spec.md §3 "Metrics"). It mirrors a subset of the
// Prometheus counters above as plain in-process counters so to_json()
// can render them synchronously without going through the Prometheus
// registry's Gather path.
type ProcessorMetrics struct {
	Processed ratomic.Int64
	Errors    ratomic.Int64
}

func NewProcessorMetrics() *ProcessorMetrics { return &ProcessorMetrics{} }

func (m *ProcessorMetrics) Snapshot() map[string]any {
	return map[string]any{
		"processed": m.Processed.Load(),
		"errors":    m.Errors.Load(),
	}
}
