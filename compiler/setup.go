package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
)

// setupProcessors calls Setup(ctx) once per newly created processor,
// handing it a RuntimeContext carrying its PauseGate (spec.md §4.4 step 6
// "clock handle, pause-gate reference, shared scheduling services"). If
// any Setup call fails, every processor in this batch that had already
// succeeded is rolled back via Teardown so the commit does not leave a
// half-started cohort running (spec.md §4.4 step 6).
func (c *Compiler) setupProcessors(nodes []*graph.Node, errs *cos.Errs) []*graph.Node {
	var ok []*graph.Node
	var failed bool
	for _, n := range nodes {
		v, hasInst := n.Components.Get(component.KindInstance)
		inst, isProc := v.(core.Processor)
		if !hasInst || !isProc {
			continue // already failed at create time
		}
		gate, _ := n.Components.Get(component.KindPauseGate)
		pg, _ := gate.(*core.PauseGate)
		ctx := core.NewRuntimeContext(n.ID, pg)
		if wiring, ok := n.Wiring(); ok {
			outputs := make(map[string]core.OutputHandle, len(wiring.Outputs))
			for name, op := range wiring.Outputs {
				outputs[name] = op
			}
			inputs := make(map[string]core.InputHandle, len(wiring.Inputs))
			for name, ip := range wiring.Inputs {
				inputs[name] = ip
			}
			ctx.BindPorts(outputs, inputs)
		}
		if err := inst.Setup(ctx); err != nil {
			n.SetState(core.ProcError)
			errs.Add(cerr.SetupFailed(string(n.ID), err))
			failed = true
			continue
		}
		ok = append(ok, n)
	}
	if failed {
		c.rollbackCreated(ok)
		return nil
	}
	return ok
}
