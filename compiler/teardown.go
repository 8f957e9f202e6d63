package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/link"
)

// teardownProcessors runs spec.md §4.4 step 3's processor half: signal
// shutdown, join with a bounded deadline, call Teardown(), release
// components, and physically remove the node. A join that exceeds the
// deadline detaches the goroutine rather than blocking the commit
// forever (spec.md §5 "Cancellation/timeout").
func (c *Compiler) teardownProcessors(nodes []*graph.Node, errs *cos.Errs) {
	for _, n := range nodes {
		n.SetState(core.ProcStopping)

		if v, ok := n.Components.Get(component.KindShutdown); ok {
			if sd, ok := v.(*execrunner.ShutdownChannel); ok {
				sd.Close()
			}
		}
		if c.mainThread != nil {
			c.mainThread.Unregister(n.ID)
		}
		if c.sharedPool != nil {
			c.sharedPool.Unregister(n.ID)
		}
		if v, ok := n.Components.Get(component.KindThread); ok {
			if th, ok := v.(*execrunner.ThreadHandle); ok {
				if !th.Join(c.teardownDeadline) {
					errs.Add(cerr.TeardownDeadlineExceeded(string(n.ID)))
					nlog.Warningf("processor %s: teardown join exceeded %s, detaching", n.ID, c.teardownDeadline)
				}
			}
		}

		if v, ok := n.Components.Get(component.KindInstance); ok {
			if inst, ok := v.(core.Processor); ok {
				if err := inst.Teardown(); err != nil {
					errs.Add(cerr.Wrap(cerr.KindLifecycle, err, "teardown failed for %s", n.ID))
				}
			}
		}

		for _, k := range n.Components.Kinds() {
			n.Components.Delete(k)
		}
		c.graph.DeleteNode(n.ID)
	}
}

// teardownLinks runs spec.md §4.4 step 3's link half: close the ring,
// drop the writer/reader handles from their ports, and remove the edge.
func (c *Compiler) teardownLinks(edges []*graph.Edge, errs *cos.Errs) {
	for _, e := range edges {
		e.SetState(core.LinkDisconnecting)

		if v, ok := e.Components.Get(component.KindLinkInst); ok {
			if inst, ok := v.(*link.Instance); ok {
				inst.Close()
			}
		}
		if srcNode, ok := c.graph.Node(e.Source.Processor); ok {
			if w, ok := srcNode.Wiring(); ok {
				if out, ok := w.Outputs[e.Source.Port]; ok {
					if writer, ok := out.Remove(e.ID); ok {
						writer.Release()
					}
				}
			}
		}
		if dstNode, ok := c.graph.Node(e.Target.Processor); ok {
			if w, ok := dstNode.Wiring(); ok {
				if in, ok := w.Inputs[e.Target.Port]; ok {
					if reader, ok := in.Remove(); ok {
						reader.Release()
					}
				}
			}
		}

		e.SetState(core.LinkDisconnected)
		for _, k := range e.Components.Kinds() {
			e.Components.Delete(k)
		}
		c.graph.DeleteEdge(e.ID)
	}
}
