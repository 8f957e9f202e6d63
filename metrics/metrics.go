// Package metrics defines the runtime's Prometheus instrumentation: the
// Metrics component attached to processor and link entities (spec.md §3,
// §4.7 "metrics": {...}). Grounded on the promauto pattern used for
// per-entity labeled vectors in
// Generativebots-ocx-backend-go-svc/internal/escrow/metrics.go.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesDropped counts every push that overwrote an unread value
	// (latest-wins) or was refused outright (in-order overflow), labeled
	// by link id — spec.md §8 scenario 6 "metrics.frames_dropped
	// increases monotonically".
	FramesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamrt_link_frames_dropped_total",
		Help: "Total values dropped or overwritten on a link's ring buffer.",
	}, []string{"link_id", "kind"})

	BufferFillLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "streamrt_link_buffer_fill_level",
		Help: "Current number of buffered values in a link's ring.",
	}, []string{"link_id"})

	ProcessorErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamrt_processor_errors_total",
		Help: "Total errors reported from a processor's execution-runner loop.",
	}, []string{"processor_id"})

	ProcessorLoopIterations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamrt_processor_loop_iterations_total",
		Help: "Total execution-runner loop iterations per processor.",
	}, []string{"processor_id", "mode"})

	FanOutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamrt_output_port_fanout_failures_total",
		Help: "Total per-handle push failures on an output port's fan-out.",
	}, []string{"processor_id", "port"})
)
