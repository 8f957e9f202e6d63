// Package compiler implements spec.md §4.4: the transactional compiler
// that turns the declarative mutations accumulated on a Graph into a
// running (or stopped) set of processors and wired links. Grounded on
// the teacher's xact/xreg registry-diff/renew pattern (xact/xreg/xreg.go)
// and on mirror.XactPut's create/Start/Stop/teardown lifecycle
// (mirror/put_copies.go, mirror/put_mirror.go).
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package compiler

import (
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
)

// plan is the result of diffing the graph's declared topology against
// what has actually been created/wired so far (spec.md §4.4 step 1).
type plan struct {
	processorsToAdd    []*graph.Node
	processorsToRemove []*graph.Node
	linksToAdd         []*graph.Edge
	linksToRemove      []*graph.Edge
	configUpdates      []*graph.Node
}

func diff(g *graph.Graph) plan {
	var p plan
	for _, n := range g.Nodes() {
		hasInstance := n.Components.Has(component.KindInstance)
		switch {
		case n.PendingDeletion():
			if hasInstance {
				p.processorsToRemove = append(p.processorsToRemove, n)
			} else {
				// Never created: drop it outright, no teardown needed.
				g.DeleteNode(n.ID)
			}
		case !hasInstance:
			p.processorsToAdd = append(p.processorsToAdd, n)
		default:
			if appliedHash(n) != n.ConfigHash() {
				p.configUpdates = append(p.configUpdates, n)
			}
		}
	}
	for _, e := range g.Edges() {
		hasInstance := e.Components.Has(component.KindLinkInst)
		switch {
		case e.PendingDeletion():
			if hasInstance {
				p.linksToRemove = append(p.linksToRemove, e)
			} else {
				g.DeleteEdge(e.ID)
			}
		case !hasInstance:
			p.linksToAdd = append(p.linksToAdd, e)
		}
	}
	return p
}

func appliedHash(n *graph.Node) string {
	if v, ok := n.Components.Get(component.KindConfigHash); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// empty reports whether the plan has no work at all (spec.md §8
// "commit() on an already-converged graph: returns success immediately,
// performs no teardown/create/wire work").
func (p plan) empty() bool {
	return len(p.processorsToAdd) == 0 && len(p.processorsToRemove) == 0 &&
		len(p.linksToAdd) == 0 && len(p.linksToRemove) == 0 && len(p.configUpdates) == 0
}

// topoOrderAdd returns processorsToAdd ordered so that a node with an
// already-wired or about-to-be-wired upstream predecessor (also being
// added) comes after it — best-effort, since a cycle among "to add" nodes
// is impossible (the graph itself is acyclic by construction).
func topoOrderAdd(g *graph.Graph, nodes []*graph.Node) []*graph.Node {
	inSet := make(map[core.ProcessorId]bool, len(nodes))
	for _, n := range nodes {
		inSet[n.ID] = true
	}
	visited := make(map[core.ProcessorId]bool, len(nodes))
	var out []*graph.Node
	var visit func(n *graph.Node)
	visit = func(n *graph.Node) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		for _, e := range g.InEdges(n.ID) {
			if pred, ok := g.Node(e.Source.Processor); ok && inSet[pred.ID] {
				visit(pred)
			}
		}
		out = append(out, n)
	}
	for _, n := range nodes {
		visit(n)
	}
	return out
}
