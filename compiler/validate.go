package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/graph"
)

// validate re-checks global invariants across the whole plan before any
// phase runs (spec.md §4.4 step 2: "Validate: re-check global
// invariants — acyclicity, port type compatibility — across the union of
// current and pending state"). Per spec.md §7's propagation policy this
// step fails early with no partial application; individual lifecycle
// failures discovered in later phases do not go through here.
func validate(g *graph.Graph, p plan) error {
	if len(p.linksToAdd) > 0 && !g.WiredAcyclic() {
		// Defensive: add_edge already rejects cycles eagerly, so this
		// only fires if something outside normal mutation corrupted the
		// wired subgraph.
		return cerr.New(cerr.KindInvalidTopology, "compiler: wired subgraph is not acyclic")
	}
	for _, e := range p.linksToAdd {
		srcNode, ok := g.Node(e.Source.Processor)
		if !ok {
			return cerr.New(cerr.KindInvalidTopology, "compiler: link %s source %s vanished before wiring", e.ID, e.Source.Processor)
		}
		dstNode, ok := g.Node(e.Target.Processor)
		if !ok {
			return cerr.New(cerr.KindInvalidTopology, "compiler: link %s target %s vanished before wiring", e.ID, e.Target.Processor)
		}
		srcPort, ok := srcNode.PortByName(e.Source.Port)
		if !ok {
			return cerr.UnknownPort(string(e.Source.Processor), e.Source.Port)
		}
		dstPort, ok := dstNode.PortByName(e.Target.Port)
		if !ok {
			return cerr.UnknownPort(string(e.Target.Processor), e.Target.Port)
		}
		if srcPort.Kind.Name != dstPort.Kind.Name {
			return cerr.PortTypeMismatch(e.Source.Port, e.Target.Port)
		}
	}
	return nil
}
