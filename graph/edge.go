package graph

import (
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
)

// Edge is a graph edge: a directed, typed link between one output port
// and one input port (spec.md §3 "Link"). Invariants enforced at
// add_edge time: source is an output, target an input, message kinds
// match, the target has no other wired edge, and the resulting graph
// stays acyclic.
type Edge struct {
	ID       core.LinkId
	Source   core.PortRef
	Target   core.PortRef
	Capacity int
	Kind     core.MessageKind

	Components    *component.Store
	pendingDelete bool
}

func (e *Edge) State() core.LinkState {
	if v, ok := e.Components.Get(component.KindLinkState); ok {
		if s, ok := v.(core.LinkState); ok {
			return s
		}
	}
	return core.LinkPending
}

func (e *Edge) SetState(s core.LinkState) { e.Components.Set(component.KindLinkState, s) }

func (e *Edge) PendingDeletion() bool { return e.pendingDelete }
