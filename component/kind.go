// Package component implements the per-entity heterogeneous component
// store of spec.md §3/§4.3: a map keyed by a closed set of component
// kinds, attached to both processor and link entities in the graph.
// Grounded on the teacher's "prefer enumeration over reflection" note
// (spec.md §9 DESIGN NOTES) and on the registry's entries{} struct
// pattern in xact/xreg/xreg.go, which keeps heterogeneous state behind a
// small set of named accessors rather than reflection-based lookup.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package component

// Kind is the closed set of component kinds the compiler knows about.
// Processor entities carry Instance, PauseGate, Shutdown, Thread, State,
// Wiring, Metrics. Link entities carry LinkInstance, LinkTypeInfo,
// LinkState.
type Kind string

const (
	KindInstance   Kind = "instance"
	KindPauseGate  Kind = "pause_gate"
	KindShutdown   Kind = "shutdown"
	KindThread     Kind = "thread"
	KindState      Kind = "state"
	KindWiring     Kind = "wiring"
	KindMetrics    Kind = "metrics"
	KindLinkInst   Kind = "link_instance"
	KindLinkType   Kind = "link_type_info"
	KindLinkState  Kind = "link_state"
	KindConfigHash Kind = "config_hash"
)
