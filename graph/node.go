// Package graph implements spec.md §4.3: the directed multigraph of
// processor nodes and link edges, each carrying an attached component
// map, plus the mutation operations (add/remove node/edge) and the
// traversals used by the compiler. Grounded on the teacher's registry
// entries{} struct (xact/xreg/xreg.go: mutex-guarded slices+maps of
// Renewable, looked up by kind/bucket) generalized to a graph keyed by
// ProcessorId/LinkId, and on core/meta/bck.go for the
// validate-then-construct shape of node/edge creation.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package graph

import (
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/port"
)

// Node is a graph vertex: a processor spec plus its component map.
// Invariant: ids are unique for the lifetime of the Graph; port metadata
// is fixed at add_node time from the registered processor type (spec.md
// §3 "port metadata is a function of processor type at registration
// time").
type Node struct {
	ID          core.ProcessorId
	TypeName    string
	DisplayName string
	Config      map[string]any
	Ports       []core.PortSpec
	Components  *component.Store

	configHash    string
	pendingDelete bool
}

func (n *Node) PortByName(name string) (core.PortSpec, bool) {
	for _, p := range n.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return core.PortSpec{}, false
}

func (n *Node) State() core.ProcessorState {
	if v, ok := n.Components.Get(component.KindState); ok {
		if s, ok := v.(core.ProcessorState); ok {
			return s
		}
	}
	return core.ProcPending
}

func (n *Node) SetState(s core.ProcessorState) { n.Components.Set(component.KindState, s) }

// Wiring returns the processor's PortWiring component, if the create
// phase has attached one yet.
func (n *Node) Wiring() (*port.Wiring, bool) {
	v, ok := n.Components.Get(component.KindWiring)
	if !ok {
		return nil, false
	}
	w, ok := v.(*port.Wiring)
	return w, ok
}

// PendingDeletion reports whether remove_node has been called but the
// compiler has not yet reconciled it (spec.md §4.3 "remove_node(id): mark
// PendingDeletion").
func (n *Node) PendingDeletion() bool { return n.pendingDelete }

// ConfigHash is the checksum of Config as it stood at the last
// add_node/update_config call; the compiler's diff step compares it
// against the checksum of the config actually applied to the running
// instance (spec.md §4.4 step 1).
func (n *Node) ConfigHash() string { return n.configHash }

// SetConfig replaces the node's desired configuration after validating
// it round-trips losslessly, recomputing ConfigHash so the next commit
// picks it up as a config_update (spec.md §4.4 step 8 assumes some path
// produces config_updates; update_config is that path).
func (n *Node) SetConfig(cfg map[string]any) error {
	if err := validateConfigRoundTrip(n.TypeName, cfg); err != nil {
		return err
	}
	n.Config = cfg
	n.configHash = configHash(cfg)
	return nil
}
