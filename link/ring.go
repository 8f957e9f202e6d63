package link

import (
	"sync"

	"github.com/tatolab/streamrt/cmn/ratomic"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/metrics"
)

// Value is one message moving through a link. The ring is type-erased at
// this layer (the compiler's Validate phase is what enforces that a link's
// declared message kind matches both endpoints — see spec.md §4.4 step 2).
type Value = any

// Ring is the bounded SPSC buffer backing a wired link. Capacity and
// overflow/read-mode policy are fixed at construction (spec.md §4.1:
// "Capacity is fixed at wiring time"). The engine enforces single
// producer/single consumer by construction — one writer handle per
// output-port connection point, one reader handle per input port — not by
// anything in Ring itself.
type Ring struct {
	mu     sync.Mutex
	buf    []Value
	head   int
	n      int
	kind   core.MessageKind
	linkID string

	pushed  ratomic.Int64
	dropped ratomic.Int64
	popped  ratomic.Int64
}

func NewRing(kind core.MessageKind, capacity int) *Ring {
	if capacity <= 0 {
		capacity = kind.DefaultCapacity
	}
	return &Ring{buf: make([]Value, capacity), kind: kind}
}

// bindMetrics attaches the link id used to label the Prometheus series;
// called once by NewInstance since the id is only known at that layer.
func (r *Ring) bindMetrics(linkID string) {
	r.mu.Lock()
	r.linkID = linkID
	r.mu.Unlock()
}

func (r *Ring) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf)
}

func (r *Ring) FillLevel() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

func (r *Ring) Counters() (pushed, dropped, popped int64) {
	return r.pushed.Load(), r.dropped.Load(), r.popped.Load()
}

// Push appends v. On a full ring it either overwrites the oldest entry
// (OverflowDrop — "push succeeds logically, but the oldest value is
// overwritten", spec.md §8) or reports ErrDropped (OverflowError) so the
// producer can apply its own policy (spec.md §4.5 "Backpressure").
func (r *Ring) Push(v Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	capc := len(r.buf)
	if capc == 0 {
		r.dropped.Inc()
		return ErrDropped
	}
	if r.n < capc {
		idx := (r.head + r.n) % capc
		r.buf[idx] = v
		r.n++
		r.pushed.Inc()
		metrics.BufferFillLevel.WithLabelValues(r.linkID).Set(float64(r.n))
		return nil
	}
	// full
	switch r.kind.Overflow {
	case core.OverflowDrop:
		r.buf[r.head] = v
		r.head = (r.head + 1) % capc
		r.pushed.Inc()
		r.dropped.Inc()
		metrics.FramesDropped.WithLabelValues(r.linkID, r.kind.Name).Inc()
		return nil
	default: // OverflowError
		r.dropped.Inc()
		metrics.FramesDropped.WithLabelValues(r.linkID, r.kind.Name).Inc()
		return ErrDropped
	}
}

// PopNext returns the oldest value (in-order read mode).
func (r *Ring) PopNext() (Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.n == 0 {
		return nil, ErrEmpty
	}
	v := r.buf[r.head]
	r.buf[r.head] = nil
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	r.popped.Inc()
	metrics.BufferFillLevel.WithLabelValues(r.linkID).Set(float64(r.n))
	return v, nil
}

// PopLatest drains every buffered value and returns only the newest
// (latest-wins read mode).
func (r *Ring) PopLatest() (Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.n == 0 {
		return nil, ErrEmpty
	}
	capc := len(r.buf)
	newestIdx := (r.head + r.n - 1) % capc
	v := r.buf[newestIdx]
	for i := 0; i < r.n; i++ {
		r.buf[(r.head+i)%capc] = nil
	}
	r.popped.Add(int64(r.n))
	r.n = 0
	r.head = 0
	metrics.BufferFillLevel.WithLabelValues(r.linkID).Set(0)
	return v, nil
}

// Pop dispatches to PopNext or PopLatest per the ring's message kind —
// "the choice between pop_next and pop_latest is a static property of
// the message kind, not a per-link option" (spec.md §4.1).
func (r *Ring) Pop() (Value, error) {
	if r.kind.Read == core.ReadLatest {
		return r.PopLatest()
	}
	return r.PopNext()
}
