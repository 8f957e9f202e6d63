package obs

import (
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/link"
	"github.com/tatolab/streamrt/metrics"
)

var exportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// PortRef, Ports, Buffer, and TypeInfo mirror the stable keys of spec.md
// §6's JSON export schema exactly.
type PortRef struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Ports struct {
	Inputs  []PortRef `json:"inputs"`
	Outputs []PortRef `json:"outputs"`
}

type EndpointRef struct {
	Node string `json:"node"`
	Port string `json:"port"`
}

type Buffer struct {
	FillLevel  int `json:"fill_level"`
	Capacity   int `json:"capacity"`
	StrongRefs int `json:"strong_refs"`
	WeakRefs   int `json:"weak_refs"`
}

type TypeInfo struct {
	Name            string `json:"name"`
	ReadMode        string `json:"read_mode"`
	OverflowPolicy  string `json:"overflow_policy"`
	DefaultCapacity int    `json:"default_capacity"`
}

type NodeJSON struct {
	ID            string         `json:"id"`
	ProcessorType string         `json:"processor_type"`
	DisplayName   string         `json:"display_name"`
	Config        map[string]any `json:"config"`
	Ports         Ports          `json:"ports"`
	Components    map[string]any `json:"components"`
}

type EdgeJSON struct {
	ID         string         `json:"id"`
	Source     EndpointRef    `json:"source"`
	Target     EndpointRef    `json:"target"`
	Components map[string]any `json:"components"`
}

type GraphJSON struct {
	Nodes []NodeJSON `json:"nodes"`
	Edges []EdgeJSON `json:"edges"`
}

// Export renders every node and edge plus its component map, with
// arrays ordered by id for the round-trip stability spec.md §8 requires
// ("to_json() on a committed graph, reparsed and compared structurally,
// equals itself (stable ordering of arrays by id)").
func Export(g *graph.Graph) GraphJSON {
	nodes := g.Nodes()
	edges := g.Edges()

	out := GraphJSON{
		Nodes: make([]NodeJSON, 0, len(nodes)),
		Edges: make([]EdgeJSON, 0, len(edges)),
	}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, exportNode(n))
	}
	for _, e := range edges {
		out.Edges = append(out.Edges, exportEdge(e))
	}
	sort.Slice(out.Nodes, func(i, j int) bool { return out.Nodes[i].ID < out.Nodes[j].ID })
	sort.Slice(out.Edges, func(i, j int) bool { return out.Edges[i].ID < out.Edges[j].ID })
	return out
}

// ToJSON marshals Export's result with the jsoniter codec used
// throughout the runtime for lossless round-tripping.
func ToJSON(g *graph.Graph) ([]byte, error) {
	return exportJSON.Marshal(Export(g))
}

func exportNode(n *graph.Node) NodeJSON {
	var ports Ports
	for _, p := range n.Ports {
		ref := PortRef{Name: p.Name, Kind: p.Kind.Name}
		if p.Direction == core.DirInput {
			ports.Inputs = append(ports.Inputs, ref)
		} else {
			ports.Outputs = append(ports.Outputs, ref)
		}
	}

	comps := map[string]any{"state": n.State().String()}
	if v, ok := n.Components.Get(component.KindPauseGate); ok {
		if gate, ok := v.(*core.PauseGate); ok {
			comps["paused"] = gate.Paused()
		}
	}
	if v, ok := n.Components.Get(component.KindMetrics); ok {
		if pm, ok := v.(*metrics.ProcessorMetrics); ok {
			comps["metrics"] = pm.Snapshot()
		}
	}
	if v, ok := n.Components.Get(component.KindThread); ok {
		if th, ok := v.(*execrunner.ThreadHandle); ok {
			comps["thread"] = map[string]any{"detached": th.Detached()}
		}
	}

	return NodeJSON{
		ID:            string(n.ID),
		ProcessorType: n.TypeName,
		DisplayName:   n.DisplayName,
		Config:        n.Config,
		Ports:         ports,
		Components:    comps,
	}
}

func exportEdge(e *graph.Edge) EdgeJSON {
	comps := map[string]any{"state": e.State().String()}
	if v, ok := e.Components.Get(component.KindLinkInst); ok {
		if inst, ok := v.(*link.Instance); ok {
			pushed, dropped, popped := inst.Counters()
			comps["buffer"] = Buffer{
				FillLevel:  inst.FillLevel(),
				Capacity:   inst.Capacity(),
				StrongRefs: inst.StrongRefs(),
				WeakRefs:   inst.WeakRefs(),
			}
			comps["counters"] = map[string]any{"pushed": pushed, "dropped": dropped, "popped": popped}
		}
	}
	comps["type_info"] = TypeInfo{
		Name:            e.Kind.Name,
		ReadMode:        e.Kind.Read.String(),
		OverflowPolicy:  overflowString(e.Kind.Overflow),
		DefaultCapacity: e.Kind.DefaultCapacity,
	}

	return EdgeJSON{
		ID:         string(e.ID),
		Source:     EndpointRef{Node: string(e.Source.Processor), Port: e.Source.Port},
		Target:     EndpointRef{Node: string(e.Target.Processor), Port: e.Target.Port},
		Components: comps,
	}
}

func overflowString(p core.OverflowPolicy) string {
	if p == core.OverflowDrop {
		return "drop"
	}
	return "error"
}
