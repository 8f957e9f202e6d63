package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/link"
)

// wireLinks allocates a LinkInstance for every new edge and installs its
// writer/reader handles on the endpoint ports (spec.md §4.4 step 5). A
// link whose endpoint processor failed creation (still missing its
// Wiring component) is marked Error and skipped rather than aborting the
// whole commit.
func (c *Compiler) wireLinks(edges []*graph.Edge, errs *cos.Errs) {
	for _, e := range edges {
		srcNode, ok := c.graph.Node(e.Source.Processor)
		if !ok {
			c.failLink(e, errs, cerr.New(cerr.KindInvalidTopology, "link %s: source %s missing", e.ID, e.Source.Processor))
			continue
		}
		dstNode, ok := c.graph.Node(e.Target.Processor)
		if !ok {
			c.failLink(e, errs, cerr.New(cerr.KindInvalidTopology, "link %s: target %s missing", e.ID, e.Target.Processor))
			continue
		}
		srcWiring, ok := srcNode.Wiring()
		if !ok || srcNode.State() == core.ProcError {
			c.failLink(e, errs, cerr.New(cerr.KindLifecycle, "link %s: source %s not wireable", e.ID, e.Source.Processor))
			continue
		}
		dstWiring, ok := dstNode.Wiring()
		if !ok || dstNode.State() == core.ProcError {
			c.failLink(e, errs, cerr.New(cerr.KindLifecycle, "link %s: target %s not wireable", e.ID, e.Target.Processor))
			continue
		}
		outPort, ok := srcWiring.Outputs[e.Source.Port]
		if !ok {
			c.failLink(e, errs, cerr.UnknownPort(string(e.Source.Processor), e.Source.Port))
			continue
		}
		inPort, ok := dstWiring.Inputs[e.Target.Port]
		if !ok {
			c.failLink(e, errs, cerr.UnknownPort(string(e.Target.Processor), e.Target.Port))
			continue
		}

		inst := link.NewInstance(e.ID, e.Kind, e.Capacity)
		if factory, ok := c.reg.Lookup(dstNode.TypeName); ok && factory.Descriptor().Mode == core.ModeReactive {
			inst.SetNotify(dstWiring.Notify)
		}

		writer := inst.NewWriter()
		outPort.Install(e.ID, writer)

		reader := inst.NewReader()
		if err := inPort.Install(e.ID, reader); err != nil {
			// Should not happen — add_edge already enforced single-binding —
			// but never leave a half-wired link on the table.
			outPort.Remove(e.ID)
			writer.Release()
			reader.Release()
			c.failLink(e, errs, cerr.Wrap(cerr.KindInvalidTopology, err, "link %s", e.ID))
			continue
		}

		e.Components.Set(component.KindLinkInst, inst)
		e.Components.Set(component.KindLinkType, e.Kind)
		e.SetState(core.LinkWired)
	}
}

func (c *Compiler) failLink(e *graph.Edge, errs *cos.Errs, err error) {
	e.SetState(core.LinkError)
	errs.Add(err)
}
