package link

import (
	"sync"

	"github.com/tatolab/streamrt/cmn/ratomic"
	"github.com/tatolab/streamrt/core"
)

// Instance is the strongly-owning heap value for a wired link's ring
// buffer (spec.md §3 "LinkInstance"). It is held exactly once, by the
// link entity's component store (component.KindLinkInst). Writer and
// Reader handles hold a pointer to the same Instance but check Alive
// before touching the ring, so removing the Instance from the component
// store and calling Close degrades every outstanding handle without
// requiring them to be tracked down individually (spec.md §9 "Weak
// handles over reference cycles").
type Instance struct {
	ring  *Ring
	alive ratomic.Bool
	weak  ratomic.Int32 // count of writer+reader handles currently installed

	notifyMu sync.Mutex
	notify   func()
}

func NewInstance(id core.LinkId, kind core.MessageKind, capacity int) *Instance {
	ring := NewRing(kind, capacity)
	ring.bindMetrics(string(id))
	inst := &Instance{ring: ring}
	inst.alive.Store(true)
	return inst
}

func (i *Instance) Alive() bool { return i.alive.Load() }

// Close invalidates every handle referencing this instance and frees the
// ring's backing storage. It does not block: the degrade-on-access
// discipline means peers observe the change on their next push/pop
// without needing to be notified synchronously (spec.md §4.1 "Handle
// degradation").
func (i *Instance) Close() {
	if !i.alive.Swap(false) {
		return
	}
	i.ring.mu.Lock()
	i.ring.buf = nil
	i.ring.mu.Unlock()
}

func (i *Instance) StrongRefs() int {
	if i.Alive() {
		return 1
	}
	return 0
}

func (i *Instance) WeakRefs() int { return int(i.weak.Load()) }

func (i *Instance) Capacity() int  { return i.ring.Capacity() }
func (i *Instance) FillLevel() int { return i.ring.FillLevel() }

func (i *Instance) Counters() (pushed, dropped, popped int64) { return i.ring.Counters() }

// NewWriter and NewReader issue weak handles; the compiler calls these
// exactly once each during the wire phase (spec.md §4.4 step 5: "install
// a writer handle on the source port... install a reader handle on the
// target port").
func (i *Instance) NewWriter() Writer {
	i.weak.Inc()
	return Writer{inst: i}
}

func (i *Instance) NewReader() Reader {
	i.weak.Inc()
	return Reader{inst: i}
}

// Release decrements the weak-handle count; called when a handle is
// dropped from a port's wiring table during disconnect.
func (i *Instance) release() { i.weak.Dec() }

// SetNotify installs the wakeup callback the wire phase binds for a
// reactive target (spec.md §4.5). A nil fn clears it.
func (i *Instance) SetNotify(fn func()) {
	i.notifyMu.Lock()
	i.notify = fn
	i.notifyMu.Unlock()
}

func (i *Instance) fireNotify() {
	i.notifyMu.Lock()
	fn := i.notify
	i.notifyMu.Unlock()
	if fn != nil {
		fn()
	}
}
