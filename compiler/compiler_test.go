package compiler_test

import (
	"testing"
	"time"

	"github.com/tatolab/streamrt/builtin"
	"github.com/tatolab/streamrt/compiler"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/registry"
)

func newGraph(t *testing.T) (*graph.Graph, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	return graph.New(reg), reg
}

// TestCommitCreatesWiresAndSpawns exercises the full create/wire/setup/
// spawn pipeline end to end: after one Commit an Emitter feeding a
// Collector is Running with its link wired, and a second Commit after
// removing everything tears it all down.
func TestCommitCreatesWiresAndSpawns(t *testing.T) {
	g, reg := newGraph(t)
	c := compiler.New(g, reg, nil, nil)

	emitterID, err := g.AddNode(core.ProcessorSpec{TypeName: "Emitter"})
	if err != nil {
		t.Fatalf("AddNode Emitter: %v", err)
	}
	collectorID, err := g.AddNode(core.ProcessorSpec{TypeName: "Collector"})
	if err != nil {
		t.Fatalf("AddNode Collector: %v", err)
	}
	if _, err := g.AddEdge(
		core.PortRef{Processor: emitterID, Port: "out"},
		core.PortRef{Processor: collectorID, Port: "in"},
		0,
	); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	result, err := c.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("Commit partial errors: %v", result.Err)
	}
	if result.ProcessorsAdded != 2 {
		t.Fatalf("expected 2 processors added, got %d", result.ProcessorsAdded)
	}
	if result.LinksAdded != 1 {
		t.Fatalf("expected 1 link added, got %d", result.LinksAdded)
	}

	node, ok := g.Node(emitterID)
	if !ok {
		t.Fatalf("emitter node missing after commit")
	}
	if node.State() != core.ProcRunning {
		t.Fatalf("expected emitter running, got %v", node.State())
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		// Give the spawned runners a few scheduler slices while waiting
		// for the single edge to report Wired.
		time.Sleep(10 * time.Millisecond)
		edges := g.Edges()
		if len(edges) == 1 && edges[0].State() == core.LinkWired {
			break
		}
	}

	// Removing the link then the processors and committing again should
	// tear everything down cleanly (no panics, no hangs).
	edges := g.Edges()
	for _, e := range edges {
		if err := g.RemoveEdge(e.ID); err != nil {
			t.Fatalf("RemoveEdge: %v", err)
		}
	}
	if err := g.RemoveNode(emitterID); err != nil {
		t.Fatalf("RemoveNode emitter: %v", err)
	}
	if err := g.RemoveNode(collectorID); err != nil {
		t.Fatalf("RemoveNode collector: %v", err)
	}
	result, err = c.Commit()
	if err != nil {
		t.Fatalf("teardown Commit: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("teardown Commit partial errors: %v", result.Err)
	}
	if len(g.Nodes()) != 0 {
		t.Fatalf("expected no nodes left after teardown, got %d", len(g.Nodes()))
	}
}

// TestCommitRollsBackOnSetupFailure exercises spec.md §4.4 step 6: a
// processor type whose Setup always fails is left in the Error state,
// and the co-batched peer whose Setup succeeded is rolled back, so only
// the failing node remains.
func TestCommitRollsBackOnSetupFailure(t *testing.T) {
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if err := reg.Register(failingSetupFactory{}); err != nil {
		t.Fatalf("Register failingSetup: %v", err)
	}
	g := graph.New(reg)
	c := compiler.New(g, reg, nil, nil)

	okID, err := g.AddNode(core.ProcessorSpec{TypeName: "Emitter"})
	if err != nil {
		t.Fatalf("AddNode Emitter: %v", err)
	}
	failID, err := g.AddNode(core.ProcessorSpec{TypeName: "FailingSetup"})
	if err != nil {
		t.Fatalf("AddNode FailingSetup: %v", err)
	}

	result, err := c.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if result.Err == nil {
		t.Fatalf("expected a partial error from the failing Setup")
	}
	if _, ok := g.Node(okID); ok {
		t.Fatalf("expected the co-batched Emitter to be rolled back too, found it still present")
	}
	failNode, ok := g.Node(failID)
	if !ok {
		t.Fatalf("expected the failing processor to stay in the graph")
	}
	if failNode.State() != core.ProcError {
		t.Fatalf("expected the failing processor in Error state, got %v", failNode.State())
	}
	if len(g.Nodes()) != 1 {
		t.Fatalf("expected only the failing node left, got %d remaining", len(g.Nodes()))
	}
}

type failingSetupProc struct{}

func (failingSetupProc) Setup(*core.RuntimeContext) error { return errSetupAlwaysFails }
func (failingSetupProc) Process() error                   { return nil }
func (failingSetupProc) Teardown() error                  { return nil }

var errSetupAlwaysFails = &setupError{}

type setupError struct{}

func (*setupError) Error() string { return "setup always fails" }

type failingSetupFactory struct{}

func (failingSetupFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{TypeName: "FailingSetup", Mode: core.ModeContinuous}
}

func (failingSetupFactory) New(core.ProcessorSpec) (core.Processor, error) {
	return failingSetupProc{}, nil
}
