package compiler

import (
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/metrics"
)

// spawnProcessors starts the execution runner for every processor that
// survived Setup, binding it to its declared thread affinity (spec.md
// §4.4 step 7, §5 "Scheduling model"). AffinityMainThread processors are
// registered with the shared MainThreadRunner and AffinityShared
// processors with the shared SharedPoolRunner instead of getting their
// own goroutine; everything else gets a dedicated one via
// execrunner.Spawn.
func (c *Compiler) spawnProcessors(nodes []*graph.Node) {
	for _, n := range nodes {
		v, _ := n.Components.Get(component.KindInstance)
		inst, ok := v.(core.Processor)
		if !ok {
			continue
		}
		factory, ok := c.reg.Lookup(n.TypeName)
		if !ok {
			continue
		}
		desc := factory.Descriptor()

		gateVal, _ := n.Components.Get(component.KindPauseGate)
		gate, _ := gateVal.(*core.PauseGate)

		shutdownVal, _ := n.Components.Get(component.KindShutdown)
		shutdown, _ := shutdownVal.(*execrunner.ShutdownChannel)

		wiring, _ := n.Wiring()

		pmVal, _ := n.Components.Get(component.KindMetrics)
		pm, _ := pmVal.(*metrics.ProcessorMetrics)

		onError := func(err error) { n.SetState(core.ProcError) }

		var th *execrunner.ThreadHandle
		switch {
		case desc.Affinity == core.AffinityMainThread && c.mainThread != nil:
			th = c.mainThread.Register(n.ID, inst, gate, shutdown, pm, onError)
		case desc.Affinity == core.AffinityShared && c.sharedPool != nil:
			th = c.sharedPool.Register(n.ID, inst, gate, shutdown, pm, onError)
		default:
			th = execrunner.Spawn(n.ID, inst, desc, wiring, gate, shutdown, pm, onError)
		}
		n.Components.Set(component.KindThread, th)
		n.SetState(core.ProcRunning)
	}
}
