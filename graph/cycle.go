package graph

import "github.com/tatolab/streamrt/core"

// acyclic reports whether the processor-level adjacency implied by every
// non-pending-delete edge, plus one tentative (src, dst) edge, has no
// cycle. Called from add_edge before the edge is admitted (spec.md §3
// "acyclicity is checked and rejected at commit time" — enforced here
// eagerly, at the mutation call, per spec.md §7's propagation policy of
// failing topology violations immediately rather than waiting for
// commit). The compiler's Validate phase re-checks the wired subgraph
// separately through WiredAcyclic.
func (g *Graph) acyclic(tentativeSrc, tentativeDst core.ProcessorId) bool {
	adj := make(map[core.ProcessorId][]core.ProcessorId, len(g.nodes))
	for _, e := range g.edges {
		if e.pendingDelete {
			continue
		}
		adj[e.Source.Processor] = append(adj[e.Source.Processor], e.Target.Processor)
	}
	if tentativeSrc != "" {
		adj[tentativeSrc] = append(adj[tentativeSrc], tentativeDst)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[core.ProcessorId]int, len(g.nodes))
	var dfs func(core.ProcessorId) bool
	dfs = func(n core.ProcessorId) bool {
		color[n] = gray
		for _, next := range adj[n] {
			switch color[next] {
			case gray:
				return false // back edge: cycle
			case white:
				if !dfs(next) {
					return false
				}
			}
		}
		color[n] = black
		return true
	}
	for n := range adj {
		if color[n] == white {
			if !dfs(n) {
				return false
			}
		}
	}
	return true
}

// WiredAcyclic reports whether the subgraph of Wired edges is acyclic,
// the property spec.md §8 demands of every commit result.
func (g *Graph) WiredAcyclic() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj := make(map[core.ProcessorId][]core.ProcessorId, len(g.nodes))
	for _, e := range g.edges {
		if e.State() != core.LinkWired {
			continue
		}
		adj[e.Source.Processor] = append(adj[e.Source.Processor], e.Target.Processor)
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[core.ProcessorId]int, len(adj))
	var dfs func(core.ProcessorId) bool
	dfs = func(n core.ProcessorId) bool {
		color[n] = gray
		for _, next := range adj[n] {
			switch color[next] {
			case gray:
				return false
			case white:
				if !dfs(next) {
					return false
				}
			}
		}
		color[n] = black
		return true
	}
	for n := range adj {
		if color[n] == white {
			if !dfs(n) {
				return false
			}
		}
	}
	return true
}
