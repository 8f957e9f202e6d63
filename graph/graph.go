package graph

import (
	"sync"

	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/component"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/registry"
)

// Graph owns the topology exclusively (spec.md §3 "Ownership summary"):
// nodes, edges, and their component maps. All mutation happens through
// its methods; the compiler assumes exclusive access for the duration of
// a reconciliation (spec.md §5).
type Graph struct {
	mu  sync.RWMutex
	reg *registry.Registry

	nodes map[core.ProcessorId]*Node
	edges map[core.LinkId]*Edge
}

func New(reg *registry.Registry) *Graph {
	return &Graph{
		reg:   reg,
		nodes: make(map[core.ProcessorId]*Node),
		edges: make(map[core.LinkId]*Edge),
	}
}

// AddNode validates the spec (processor type exists, config round-trips
// losslessly), assigns an id, and attaches PendingState (spec.md §4.3).
func (g *Graph) AddNode(spec core.ProcessorSpec) (core.ProcessorId, error) {
	factory, ok := g.reg.Lookup(spec.TypeName)
	if !ok {
		return "", cerr.UnknownProcessorType(spec.TypeName)
	}
	if spec.Config != nil {
		if err := validateConfigRoundTrip(spec.TypeName, spec.Config); err != nil {
			return "", err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := core.NewProcessorId()
	n := &Node{
		ID:          id,
		TypeName:    spec.TypeName,
		DisplayName: spec.DisplayName,
		Config:      spec.Config,
		Ports:       factory.Descriptor().Ports,
		Components:  component.NewStore(),
		configHash:  configHash(spec.Config),
	}
	n.SetState(core.ProcPending)
	g.nodes[id] = n
	return id, nil
}

// RemoveNode marks the node PendingDeletion; the compiler reconciles on
// the next commit (spec.md §4.3).
func (g *Graph) RemoveNode(id core.ProcessorId) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return cerr.New(cerr.KindInvalidTopology, "no such processor %q", id)
	}
	n.pendingDelete = true
	return nil
}

// AddEdge validates endpoints exist, ports exist with matching direction
// and message kind, the target input has no other non-terminal edge, and
// the resulting graph stays acyclic (spec.md §4.3).
func (g *Graph) AddEdge(source, target core.PortRef, capacity int) (core.LinkId, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcNode, ok := g.nodes[source.Processor]
	if !ok {
		return "", cerr.New(cerr.KindInvalidTopology, "no such processor %q", source.Processor)
	}
	dstNode, ok := g.nodes[target.Processor]
	if !ok {
		return "", cerr.New(cerr.KindInvalidTopology, "no such processor %q", target.Processor)
	}
	srcPort, ok := srcNode.PortByName(source.Port)
	if !ok || srcPort.Direction != core.DirOutput {
		return "", cerr.UnknownPort(string(source.Processor), source.Port)
	}
	dstPort, ok := dstNode.PortByName(target.Port)
	if !ok || dstPort.Direction != core.DirInput {
		return "", cerr.UnknownPort(string(target.Processor), target.Port)
	}
	if srcPort.Kind.Name != dstPort.Kind.Name {
		return "", cerr.PortTypeMismatch(source.Port, target.Port)
	}
	for _, e := range g.edges {
		if e.pendingDelete || e.State().Terminal() {
			continue
		}
		if e.Target == target {
			return "", cerr.InputAlreadyBound(target.Port)
		}
	}
	if !g.acyclic(source.Processor, target.Processor) {
		return "", cerr.Cycle(string(source.Processor) + "->" + string(target.Processor))
	}

	if capacity <= 0 {
		capacity = srcPort.Kind.DefaultCapacity
	}
	id := core.NewLinkId()
	e := &Edge{
		ID:         id,
		Source:     source,
		Target:     target,
		Capacity:   capacity,
		Kind:       srcPort.Kind,
		Components: component.NewStore(),
	}
	e.SetState(core.LinkPending)
	g.edges[id] = e
	return id, nil
}

func (g *Graph) RemoveEdge(id core.LinkId) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[id]
	if !ok {
		return cerr.New(cerr.KindInvalidTopology, "no such link %q", id)
	}
	e.pendingDelete = true
	return nil
}

// UpdateConfig replaces a processor's desired configuration; the next
// commit diffs it against what is actually applied and, if different,
// runs the config-update phase (spec.md §4.4 step 1, step 8). This is a
// supplemental mutation beyond add_node/remove_node: the compiler
// algorithm's diff step explicitly computes "config_updates", which is
// otherwise unreachable without a way to change a processor's config
// after creation.
func (g *Graph) UpdateConfig(id core.ProcessorId, cfg map[string]any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return cerr.New(cerr.KindInvalidTopology, "no such processor %q", id)
	}
	return n.SetConfig(cfg)
}

func (g *Graph) Node(id core.ProcessorId) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Edge(id core.LinkId) (*Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	return e, ok
}

// Nodes returns a snapshot of every node (deletions and additions are
// reflected only up to the point of the call). The order is map order
// and differs between calls; callers that need an order sort the result.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// OutEdges returns every edge sourced at id, including edges marked
// pending-delete.
func (g *Graph) OutEdges(id core.ProcessorId) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*Edge
	for _, e := range g.edges {
		if e.Source.Processor == id {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns every edge targeting id, including edges marked
// pending-delete.
func (g *Graph) InEdges(id core.ProcessorId) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*Edge
	for _, e := range g.edges {
		if e.Target.Processor == id {
			out = append(out, e)
		}
	}
	return out
}

// deleteNode and deleteEdge physically remove entries; only the compiler
// (after successful teardown) calls these.
func (g *Graph) deleteNode(id core.ProcessorId) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.nodes, id)
}

func (g *Graph) deleteEdge(id core.LinkId) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.edges, id)
}

// DeleteNode and DeleteEdge expose the physical-removal step to the
// compiler package without making it part of the general mutation API
// (spec.md §4.4 step 3: "mark Disconnected and remove the edge").
func (g *Graph) DeleteNode(id core.ProcessorId) { g.deleteNode(id) }
func (g *Graph) DeleteEdge(id core.LinkId)      { g.deleteEdge(id) }
