package compiler

import (
	"time"

	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/registry"
)

// DefaultTeardownDeadline bounds how long the teardown phase waits for a
// processor's runner goroutine to exit before detaching it (spec.md §5
// "Cancellation/timeout": "a per-processor bounded deadline"). The
// original implementation's equivalent constant is not preserved in the
// distillation; 3s balances "long enough for a well-behaved processor
// mid-Process() to notice shutdown" against "short enough that a stuck
// processor doesn't visibly hang Commit()".
const DefaultTeardownDeadline = 3 * time.Second

// Compiler is the transactional reconciler of spec.md §4.4: it owns no
// state of its own beyond scheduling knobs, reading and mutating the
// Graph and Registry handed to it.
type Compiler struct {
	graph            *graph.Graph
	reg              *registry.Registry
	mainThread       *execrunner.MainThreadRunner
	sharedPool       *execrunner.SharedPoolRunner
	teardownDeadline time.Duration
}

// New builds a Compiler bound to the given graph and registry. mainThread
// may be nil if the embedding process never registers an
// AffinityMainThread processor type; sharedPool may be nil if it never
// registers an AffinityShared one.
func New(g *graph.Graph, reg *registry.Registry, mainThread *execrunner.MainThreadRunner, sharedPool *execrunner.SharedPoolRunner) *Compiler {
	return &Compiler{
		graph:            g,
		reg:              reg,
		mainThread:       mainThread,
		sharedPool:       sharedPool,
		teardownDeadline: DefaultTeardownDeadline,
	}
}

func (c *Compiler) SetTeardownDeadline(d time.Duration) { c.teardownDeadline = d }

// CommitResult reports what a single commit changed, plus any partial
// failures accumulated along the way (spec.md §4.4: "the overall result
// reports partial success").
type CommitResult struct {
	ProcessorsAdded   int
	ProcessorsRemoved int
	LinksAdded        int
	LinksRemoved      int
	ConfigUpdates     int
	Err               error
}

// Commit runs the full create→wire→setup→spawn pipeline for additions
// plus the teardown pipeline for removals and delivers pending config
// updates, in the phase order of spec.md §4.4: diff, validate, teardown,
// create, wire, setup, spawn, config-update. Commit on an already
// converged graph is a no-op that returns immediately (spec.md §8).
func (c *Compiler) Commit() (*CommitResult, error) {
	p := diff(c.graph)
	if p.empty() {
		return &CommitResult{}, nil
	}
	if err := validate(c.graph, p); err != nil {
		return nil, err
	}

	errs := &cos.Errs{}

	c.teardownLinks(p.linksToRemove, errs)
	c.teardownProcessors(p.processorsToRemove, errs)

	created := c.createProcessors(p.processorsToAdd, errs)
	c.wireLinks(p.linksToAdd, errs)
	setup := c.setupProcessors(created, errs)
	c.spawnProcessors(setup)

	c.applyConfigUpdates(p.configUpdates, errs)

	return &CommitResult{
		ProcessorsAdded:   len(setup),
		ProcessorsRemoved: len(p.processorsToRemove),
		LinksAdded:        countWired(p.linksToAdd),
		LinksRemoved:      len(p.linksToRemove),
		ConfigUpdates:     len(p.configUpdates),
		Err:               errs.JoinErr(),
	}, nil
}

func countWired(edges []*graph.Edge) int {
	n := 0
	for _, e := range edges {
		if e.State() == core.LinkWired {
			n++
		}
	}
	return n
}
