package streamrt

import (
	"time"

	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/compiler"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/hk"
	"github.com/tatolab/streamrt/obs"
)

// AddProcessor validates and registers a new processor node, committing
// immediately in BatchAutomatically mode (spec.md §6
// "add_processor(spec{type_name, config, display_name?}) -> ProcessorId").
func (rt *Runtime) AddProcessor(spec core.ProcessorSpec) (core.ProcessorId, error) {
	rep := rt.call(command{kind: cmdAddProcessor, spec: spec})
	return rep.procID, rep.err
}

func (rt *Runtime) RemoveProcessor(id core.ProcessorId) error {
	return rt.call(command{kind: cmdRemoveProcessor, procID: id}).err
}

// Connect wires source's output port to target's input port (spec.md §6
// "connect(OutputRef, InputRef) -> LinkId"). capacity <= 0 uses the
// message kind's default.
func (rt *Runtime) Connect(source, target core.PortRef, capacity int) (core.LinkId, error) {
	rep := rt.call(command{kind: cmdConnect, src: source, dst: target, capacity: capacity})
	return rep.linkID, rep.err
}

func (rt *Runtime) Disconnect(id core.LinkId) error {
	return rt.call(command{kind: cmdDisconnect, linkID: id}).err
}

// UpdateConfig replaces a processor's desired configuration; picked up
// as a config_update on the next commit (spec.md §4.4 step 8).
func (rt *Runtime) UpdateConfig(id core.ProcessorId, cfg map[string]any) error {
	return rt.call(command{kind: cmdUpdateConfig, procID: id, cfg: cfg}).err
}

// Commit runs the compiler once; only meaningful in BatchManually mode
// (spec.md §6 "commit() — only meaningful in manual batch mode").
func (rt *Runtime) Commit() (*compiler.CommitResult, error) {
	rep := rt.call(command{kind: cmdCommit})
	return rep.commitResult, rep.err
}

// Start marks the runtime running for status() purposes and begins the
// housekeeping loop. It does not itself spawn processors — that already
// happened on the commit that wired them — so Start only toggles the
// running flag reported by status() and the periodic status log, not
// dataflow.
func (rt *Runtime) Start() error {
	if rt.running.Swap(true) {
		return nil
	}
	rt.hk.Reg("streamrt-status-log"+hk.NameSuffix, rt.logStatus, 30*time.Second)
	return nil
}

// Stop tears down every processor and link and stops the owning
// goroutine; it does not return until every thread has joined or its
// teardown deadline has expired (spec.md §5 "stop() happens-before
// returning to caller only after all threads have joined or deadline
// expired"). Safe to call even if Start was never called: processors are
// spawned by Commit, not by Start, so a graph can have live runner
// goroutines to tear down regardless of the running flag Start/Stop
// otherwise toggle for status()/logging purposes.
func (rt *Runtime) Stop() error {
	rt.closeOnce.Do(func() {
		if rt.running.Swap(false) {
			rt.hk.Unreg("streamrt-status-log" + hk.NameSuffix)
		}
		if rt.mainThr != nil {
			rt.mainThr.Stop()
		}
		if rt.shared != nil {
			rt.shared.Stop()
		}
		rep := rt.call(command{kind: cmdStop})
		close(rt.cmdCh)
		<-rt.loopDone
		rt.stopErr = rep.err
	})
	return rt.stopErr
}

// Pause pauses the listed processors, or every processor if ids is
// empty (spec.md §6 "pause(id?)").
func (rt *Runtime) Pause(ids ...core.ProcessorId) error {
	return rt.call(command{kind: cmdPause, pauseIDs: ids}).err
}

func (rt *Runtime) Resume(ids ...core.ProcessorId) error {
	return rt.call(command{kind: cmdResume, pauseIDs: ids}).err
}

func (rt *Runtime) Status() obs.Status {
	return rt.call(command{kind: cmdStatus}).status
}

// ToJSON renders the committed graph per spec.md §6's stable schema.
func (rt *Runtime) ToJSON() ([]byte, error) {
	rep := rt.call(command{kind: cmdToJSON})
	return rep.json, rep.err
}

// setPause runs on the owning goroutine (called only from dispatch); it
// is not itself dispatched through the command channel.
func (rt *Runtime) setPause(ids []core.ProcessorId, pause bool) error {
	targets := ids
	if len(targets) == 0 {
		for _, n := range rt.graph.Nodes() {
			targets = append(targets, n.ID)
		}
	}
	for _, id := range targets {
		n, ok := rt.graph.Node(id)
		if !ok {
			return cerr.New(cerr.KindInvalidTopology, "no such processor %q", id)
		}
		v, ok := n.Components.Get(component.KindPauseGate)
		if !ok {
			return cerr.New(cerr.KindLifecycle, "processor %q has no pause gate (not yet created)", id)
		}
		gate, ok := v.(*core.PauseGate)
		if !ok {
			continue
		}
		if pause {
			gate.Pause()
			n.SetState(core.ProcPaused)
		} else {
			gate.Resume()
			n.SetState(core.ProcRunning)
		}
	}
	return nil
}

// teardownAll removes every processor and link and runs the compiler
// once so Stop() blocks until every runner has actually exited.
func (rt *Runtime) teardownAll() error {
	for _, e := range rt.graph.Edges() {
		_ = rt.graph.RemoveEdge(e.ID)
	}
	for _, n := range rt.graph.Nodes() {
		_ = rt.graph.RemoveNode(n.ID)
	}
	_, err := rt.compiler.Commit()
	return err
}

func (rt *Runtime) logStatus() time.Duration {
	st := obs.Snapshot(rt.graph, rt.running.Load())
	nlog.Infof("status: %d processors, %d links", st.ProcessorCount, st.LinkCount)
	return 0
}
