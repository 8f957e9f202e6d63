// Package obs implements spec.md §4.7: the two external observation
// surfaces over a Graph — an O(n+e) status snapshot and a deterministic
// JSON export of the full graph and component state. Grounded on the
// teacher's stats package shape (stats/common_statsd.go renders named
// counters/gauges into an external format) generalized from a single
// flat stats registry to a per-entity component-map walk.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package obs

import (
	"sort"

	"github.com/tatolab/streamrt/graph"
)

// EntityState is one row of Status.States (spec.md §6 "status() ->
// {running, processor_count, link_count, states[]}").
type EntityState struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"` // "processor" or "link"
	State string `json:"state"`
}

type Status struct {
	Running        bool          `json:"running"`
	ProcessorCount int           `json:"processor_count"`
	LinkCount      int           `json:"link_count"`
	States         []EntityState `json:"states"`
}

// Snapshot walks every node and edge exactly once (O(n+e)) and reports
// their state without touching the component map beyond the State
// component, so it stays cheap enough to call on every status() request.
func Snapshot(g *graph.Graph, running bool) Status {
	nodes := g.Nodes()
	edges := g.Edges()

	states := make([]EntityState, 0, len(nodes)+len(edges))
	for _, n := range nodes {
		states = append(states, EntityState{ID: string(n.ID), Kind: "processor", State: n.State().String()})
	}
	for _, e := range edges {
		states = append(states, EntityState{ID: string(e.ID), Kind: "link", State: e.State().String()})
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Kind != states[j].Kind {
			return states[i].Kind < states[j].Kind
		}
		return states[i].ID < states[j].ID
	})

	return Status{
		Running:        running,
		ProcessorCount: len(nodes),
		LinkCount:      len(edges),
		States:         states,
	}
}
