package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/metrics"
	"github.com/tatolab/streamrt/port"
)

// createProcessors instantiates every new node via its factory and
// attaches the components every processor carries from birth: Instance,
// Shutdown, Wiring, PauseGate, State=Idle (spec.md §4.4 step 4). Nodes
// whose factory call fails are left in Error state and excluded from
// later phases; they are not added to the returned slice.
func (c *Compiler) createProcessors(nodes []*graph.Node, errs *cos.Errs) []*graph.Node {
	created := make([]*graph.Node, 0, len(nodes))
	for _, n := range topoOrderAdd(c.graph, nodes) {
		factory, ok := c.reg.Lookup(n.TypeName)
		if !ok {
			n.SetState(core.ProcError)
			errs.Add(cerr.UnknownProcessorType(n.TypeName))
			continue
		}
		inst, err := factory.New(core.ProcessorSpec{TypeName: n.TypeName, Config: n.Config, DisplayName: n.DisplayName})
		if err != nil {
			n.SetState(core.ProcError)
			errs.Add(cerr.Wrap(cerr.KindLifecycle, err, "create failed for %s", n.ID))
			continue
		}
		n.Components.Set(component.KindInstance, inst)
		n.Components.Set(component.KindShutdown, execrunner.NewShutdownChannel())
		n.Components.Set(component.KindWiring, port.NewWiring(string(n.ID), n.Ports))
		n.Components.Set(component.KindPauseGate, core.NewPauseGate())
		n.Components.Set(component.KindMetrics, metrics.NewProcessorMetrics())
		n.Components.Set(component.KindConfigHash, n.ConfigHash())
		n.SetState(core.ProcIdle)
		created = append(created, n)
	}
	return created
}

// rollbackCreated runs Teardown on every processor in nodes, clears its
// components and deletes it from the graph. The setup phase calls it with
// the peers whose Setup already succeeded, so a Setup failure elsewhere in
// the same batch does not leave them half-wired (spec.md §4.4 step 6:
// "partial creation is rolled back by running teardown on successfully
// set-up peers").
func (c *Compiler) rollbackCreated(nodes []*graph.Node) {
	for _, n := range nodes {
		if v, ok := n.Components.Get(component.KindInstance); ok {
			if inst, ok := v.(core.Processor); ok {
				_ = inst.Teardown()
			}
		}
		for _, k := range n.Components.Kinds() {
			n.Components.Delete(k)
		}
		c.graph.DeleteNode(n.ID)
	}
}
