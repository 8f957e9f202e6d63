package compiler

import (
	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
)

// applyConfigUpdates delivers a changed config to processors that opt
// into live updates via ConfigApplier (spec.md §4.4 step 8). A processor
// that does not implement it cannot honor the change: the update is
// rejected with a lifecycle error rather than silently ignored, and the
// processor's last-applied hash is left unchanged so the next commit
// retries it.
func (c *Compiler) applyConfigUpdates(nodes []*graph.Node, errs *cos.Errs) {
	for _, n := range nodes {
		v, ok := n.Components.Get(component.KindInstance)
		if !ok {
			continue
		}
		applier, ok := v.(core.ConfigApplier)
		if !ok {
			errs.Add(cerr.New(cerr.KindLifecycle, "processor %s type %s does not support config updates", n.ID, n.TypeName))
			continue
		}
		if err := applier.ApplyConfig(n.Config); err != nil {
			n.SetState(core.ProcError)
			errs.Add(cerr.Wrap(cerr.KindLifecycle, err, "config update failed for %s", n.ID))
			continue
		}
		n.Components.Set(component.KindConfigHash, n.ConfigHash())
	}
}
