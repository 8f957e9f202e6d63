package streamrt

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/compiler"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/obs"
)

type cmdKind int

const (
	cmdAddProcessor cmdKind = iota
	cmdRemoveProcessor
	cmdConnect
	cmdDisconnect
	cmdUpdateConfig
	cmdCommit
	cmdPause
	cmdResume
	cmdStatus
	cmdToJSON
	cmdStop
)

type command struct {
	kind cmdKind

	spec     core.ProcessorSpec
	procID   core.ProcessorId
	linkID   core.LinkId
	src, dst core.PortRef
	capacity int
	cfg      map[string]any
	pauseIDs []core.ProcessorId

	reply chan cmdReply
}

type cmdReply struct {
	procID       core.ProcessorId
	linkID       core.LinkId
	status       obs.Status
	json         []byte
	commitResult *compiler.CommitResult
	err          error
}

func (rt *Runtime) call(cmd command) cmdReply {
	cmd.reply = make(chan cmdReply, 1)
	select {
	case <-rt.loopDone:
		// Stop has closed cmdCh and the owning goroutine is gone: answer
		// read-only queries directly and refuse everything else.
		if cmd.kind == cmdStatus || cmd.kind == cmdToJSON {
			rt.dispatch(cmd)
			return <-cmd.reply
		}
		return cmdReply{err: cerr.New(cerr.KindLifecycle, "runtime is stopped")}
	default:
	}
	rt.cmdCh <- cmd
	return <-cmd.reply
}

func (rt *Runtime) dispatch(cmd command) {
	var rep cmdReply
	switch cmd.kind {
	case cmdAddProcessor:
		rep.procID, rep.err = rt.graph.AddNode(cmd.spec)
		if rep.err == nil {
			rep.err = rt.maybeAutoCommit()
		}
	case cmdRemoveProcessor:
		rep.err = rt.graph.RemoveNode(cmd.procID)
		if rep.err == nil {
			rep.err = rt.maybeAutoCommit()
		}
	case cmdConnect:
		rep.linkID, rep.err = rt.graph.AddEdge(cmd.src, cmd.dst, cmd.capacity)
		if rep.err == nil {
			rep.err = rt.maybeAutoCommit()
		}
	case cmdDisconnect:
		rep.err = rt.graph.RemoveEdge(cmd.linkID)
		if rep.err == nil {
			rep.err = rt.maybeAutoCommit()
		}
	case cmdUpdateConfig:
		rep.err = rt.graph.UpdateConfig(cmd.procID, cmd.cfg)
		if rep.err == nil {
			rep.err = rt.maybeAutoCommit()
		}
	case cmdCommit:
		rep.commitResult, rep.err = rt.compiler.Commit()
	case cmdPause:
		rep.err = rt.setPause(cmd.pauseIDs, true)
	case cmdResume:
		rep.err = rt.setPause(cmd.pauseIDs, false)
	case cmdStatus:
		rep.status = obs.Snapshot(rt.graph, rt.running.Load())
	case cmdToJSON:
		rep.json, rep.err = obs.ToJSON(rt.graph)
	case cmdStop:
		rep.err = rt.teardownAll()
	}
	cmd.reply <- rep
}
