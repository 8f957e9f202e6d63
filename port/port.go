// Package port implements spec.md §4.2: processor-facing input and
// output ports holding sets of weak link handles. An output port fans
// out to any number of writer handles; an input port accepts at most one
// reader handle. Port identity is the pair (processor id, port name).
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package port

import (
	"fmt"
	"sync"

	"github.com/tatolab/streamrt/cmn/ratomic"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/link"
	"github.com/tatolab/streamrt/metrics"
)

// OutputPort holds an ordered set of writer handles, one per fan-out
// link. Writing publishes to every current handle; per-handle failures
// are counted but never abort the call (spec.md §4.2).
type OutputPort struct {
	Spec    core.PortSpec
	ownerID string

	mu      sync.Mutex
	writers map[core.LinkId]link.Writer
	order   []core.LinkId

	failures ratomic.Int64
}

func NewOutputPort(ownerID string, spec core.PortSpec) *OutputPort {
	return &OutputPort{Spec: spec, ownerID: ownerID, writers: make(map[core.LinkId]link.Writer)}
}

func (p *OutputPort) Install(id core.LinkId, w link.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.writers[id]; !exists {
		p.order = append(p.order, id)
	}
	p.writers[id] = w
}

// Remove drops the handle for id and returns it so the caller can call
// Release() on it outside the lock.
func (p *OutputPort) Remove(id core.LinkId) (link.Writer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.writers[id]
	if !ok {
		return link.Writer{}, false
	}
	delete(p.writers, id)
	for i, lid := range p.order {
		if lid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return w, true
}

// Push publishes v to every installed writer handle, in install order.
// Individual failures increment the failure counter but do not stop the
// fan-out.
func (p *OutputPort) Push(v link.Value) (sent, failed int) {
	p.mu.Lock()
	handles := make([]link.Writer, len(p.order))
	for i, id := range p.order {
		handles[i] = p.writers[id]
	}
	p.mu.Unlock()

	for _, w := range handles {
		if err := w.Push(v); err != nil {
			failed++
			p.failures.Inc()
			metrics.FanOutFailures.WithLabelValues(p.ownerID, p.Spec.Name).Inc()
			continue
		}
		sent++
	}
	return sent, failed
}

func (p *OutputPort) FanOut() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

func (p *OutputPort) Failures() int64 { return p.failures.Load() }

// InputPort holds at most one reader handle (spec.md §4.2, and §4.3's
// invariant "no input has more than one Wired edge").
type InputPort struct {
	Spec core.PortSpec

	mu     sync.Mutex
	linkID core.LinkId
	reader link.Reader
	bound  bool
}

func NewInputPort(spec core.PortSpec) *InputPort { return &InputPort{Spec: spec} }

func (p *InputPort) Install(id core.LinkId, r link.Reader) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bound {
		return fmt.Errorf("input port %s: already bound to link %s", p.Spec.Name, p.linkID)
	}
	p.linkID, p.reader, p.bound = id, r, true
	return nil
}

func (p *InputPort) Remove() (link.Reader, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.bound {
		return link.Reader{}, false
	}
	r := p.reader
	p.reader, p.bound = link.Reader{}, false
	return r, true
}

func (p *InputPort) Bound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bound
}

// Pop returns at most one value per invocation, using the message kind's
// read mode (spec.md §4.2). Returns link.ErrEmpty if unbound or the
// underlying ring has nothing pending.
func (p *InputPort) Pop() (link.Value, error) {
	p.mu.Lock()
	r, bound := p.reader, p.bound
	p.mu.Unlock()
	if !bound {
		return nil, link.ErrEmpty
	}
	return r.Pop()
}
