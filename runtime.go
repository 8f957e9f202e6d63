// Package streamrt is the public entry point of spec.md §4.6 "Runtime
// Facade": a single owning goroutine behind a bounded command channel,
// fronting the graph, registry, and compiler so every mutation and query
// — whichever goroutine calls it from — is serialized onto one thread
// (spec.md §9 "Cross-thread mutation": "funnel external requests through
// a command channel to the runtime's owning thread"). Grounded on the
// teacher's xreg registry as the thing being serialized behind this
// facade, and on mirror.XactPut's DemandBase start/stop lifecycle for
// the Start/Stop shape.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package streamrt

import (
	"sync"
	"time"

	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/cmn/ratomic"
	"github.com/tatolab/streamrt/compiler"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/hk"
	"github.com/tatolab/streamrt/registry"
)

// BatchMode selects when the compiler runs (spec.md §4.6).
type BatchMode int

const (
	// BatchAutomatically commits after every mutating call.
	BatchAutomatically BatchMode = iota
	// BatchManually accumulates mutations until an explicit Commit().
	BatchManually
)

const commandQueueDepth = 64

// Runtime is the facade described in spec.md §4.6. Construct with New,
// then drive it exclusively through its exported methods; the owning
// goroutine started in New is the only thing ever touching graph/
// compiler state directly.
type Runtime struct {
	graph    *graph.Graph
	reg      *registry.Registry
	compiler *compiler.Compiler
	mainThr  *execrunner.MainThreadRunner
	shared   *execrunner.SharedPoolRunner
	hk       *hk.Housekeeper

	mode    BatchMode
	running ratomic.Bool

	cmdCh     chan command
	closeOnce sync.Once
	loopDone  chan struct{}
	stopErr   error
}

// New constructs an empty runtime bound to reg (spec.md §6 "new() ->
// Runtime — constructs an empty runtime"). The registry must already
// have every processor type this runtime will use registered; New does
// not mutate it.
func New(reg *registry.Registry, mode BatchMode) *Runtime {
	g := graph.New(reg)
	mt := execrunner.NewMainThreadRunner()
	sp := execrunner.NewSharedPoolRunner(execrunner.DefaultSharedPoolSize, execrunner.DefaultSharedPoolTick)
	rt := &Runtime{
		graph:    g,
		reg:      reg,
		compiler: compiler.New(g, reg, mt, sp),
		mainThr:  mt,
		shared:   sp,
		hk:       hk.New(),
		mode:     mode,
		cmdCh:    make(chan command, commandQueueDepth),
		loopDone: make(chan struct{}),
	}
	go rt.loop()
	return rt
}

// MainThreadRunner exposes the cooperative scheduler for
// AffinityMainThread processors. An embedding process with such
// processors should call its Start(tick) from whatever goroutine it
// designates as the process main thread (spec.md §5); streamrt cannot
// safely do this on the caller's behalf since "the process main thread"
// is a property of how main() was entered, not of this goroutine.
func (rt *Runtime) MainThreadRunner() *execrunner.MainThreadRunner { return rt.mainThr }

// SetTeardownDeadline overrides compiler.DefaultTeardownDeadline for
// this runtime's commits.
func (rt *Runtime) SetTeardownDeadline(d time.Duration) { rt.compiler.SetTeardownDeadline(d) }

func (rt *Runtime) loop() {
	defer close(rt.loopDone)
	for cmd := range rt.cmdCh {
		rt.dispatch(cmd)
		if cmd.kind == cmdStop {
			return
		}
	}
}

// maybeAutoCommit runs the compiler immediately in BatchAutomatically
// mode; in BatchManually mode mutations sit until Commit() is called
// (spec.md §4.6).
func (rt *Runtime) maybeAutoCommit() error {
	if rt.mode != BatchAutomatically {
		return nil
	}
	res, err := rt.compiler.Commit()
	if err != nil {
		return err
	}
	if res.Err != nil {
		nlog.Warningf("commit completed with partial errors: %v", res.Err)
	}
	return nil
}
