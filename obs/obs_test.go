package obs_test

import (
	"encoding/json"
	"testing"

	"github.com/tatolab/streamrt/builtin"
	"github.com/tatolab/streamrt/compiler"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/graph"
	"github.com/tatolab/streamrt/obs"
	"github.com/tatolab/streamrt/registry"
)

func committedGraph(t *testing.T) *graph.Graph {
	t.Helper()
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	g := graph.New(reg)
	c := compiler.New(g, reg, nil, nil)

	emitterID, err := g.AddNode(core.ProcessorSpec{TypeName: "Emitter"})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	collectorID, err := g.AddNode(core.ProcessorSpec{TypeName: "Collector"})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if _, err := g.AddEdge(
		core.PortRef{Processor: emitterID, Port: "out"},
		core.PortRef{Processor: collectorID, Port: "in"},
		0,
	); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := c.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return g
}

func TestSnapshotReportsCounts(t *testing.T) {
	g := committedGraph(t)
	st := obs.Snapshot(g, true)
	if !st.Running {
		t.Fatalf("expected Running to reflect the argument passed in")
	}
	if st.ProcessorCount != 2 {
		t.Fatalf("expected 2 processors, got %d", st.ProcessorCount)
	}
	if st.LinkCount != 1 {
		t.Fatalf("expected 1 link, got %d", st.LinkCount)
	}
	if len(st.States) != 3 {
		t.Fatalf("expected 3 entity states (2 processors + 1 link), got %d", len(st.States))
	}
}

func TestToJSONRoundTripsAndSortsByID(t *testing.T) {
	g := committedGraph(t)
	out, err := obs.ToJSON(g)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var first, second map[string]any
	if err := json.Unmarshal(out, &first); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out2, err := obs.ToJSON(g)
	if err != nil {
		t.Fatalf("ToJSON (second call): %v", err)
	}
	if err := json.Unmarshal(out2, &second); err != nil {
		t.Fatalf("unmarshal (second call): %v", err)
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if string(b1) != string(b2) {
		t.Fatalf("expected to_json to be stable across calls:\n%s\nvs\n%s", b1, b2)
	}

	nodes, ok := first["nodes"].([]any)
	if !ok || len(nodes) != 2 {
		t.Fatalf("expected 2 nodes in exported JSON, got %v", first["nodes"])
	}
	n0 := nodes[0].(map[string]any)
	n1 := nodes[1].(map[string]any)
	if n0["id"].(string) >= n1["id"].(string) {
		t.Fatalf("expected nodes sorted ascending by id, got %v then %v", n0["id"], n1["id"])
	}

	edges, ok := first["edges"].([]any)
	if !ok || len(edges) != 1 {
		t.Fatalf("expected 1 edge in exported JSON, got %v", first["edges"])
	}
	edge := edges[0].(map[string]any)
	comps := edge["components"].(map[string]any)
	if comps["state"].(string) == "" {
		t.Fatalf("expected edge components.state to be populated")
	}
	if _, ok := comps["buffer"]; !ok {
		t.Fatalf("expected edge components.buffer to be populated for a wired link")
	}
}
