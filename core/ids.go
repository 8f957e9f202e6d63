// Package core defines the processor graph's data model: stable
// identifiers, message kinds, port and processor specs, execution modes,
// lifecycle states, the Processor contract itself, and the pause gate
// primitive shared by the execution runner and the compiler. It mirrors
// the teacher's core package (core/lom.go, core/lif.go: the fundamental
// types referenced by every other package) without depending on any of
// them.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package core

import "github.com/tatolab/streamrt/cmn/cos"

// ProcessorId is a stable, immutable identifier assigned when a node is
// added to the graph (spec.md §3).
type ProcessorId string

// LinkId is a stable, immutable identifier assigned when an edge is added
// to the graph (spec.md §3).
type LinkId string

func NewProcessorId() ProcessorId { return ProcessorId("p-" + cos.GenUUID()) }
func NewLinkId() LinkId           { return LinkId("l-" + cos.GenUUID()) }

// PortRef identifies one port by (processor id, port name), per spec.md
// §4.2 "Port identity is a pair (processor id, port name)".
type PortRef struct {
	Processor ProcessorId
	Port      string
}
