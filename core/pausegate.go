package core

import (
	"sync"

	"github.com/tatolab/streamrt/cmn/ratomic"
)

// PauseGate is the lock-free flag checked at every runner loop head
// (spec.md §4.5 "Pause gate"). The fast path (Paused) is a single atomic
// load; Wait blocks a runner goroutine until Resume or shutdown, using a
// channel that is replaced on every Pause so waiters observe a fresh
// close rather than a stale signal.
type PauseGate struct {
	paused ratomic.Bool

	mu       sync.Mutex
	resumeCh chan struct{}
}

func NewPauseGate() *PauseGate {
	ch := make(chan struct{})
	close(ch) // released: anyone waiting sees it immediately
	return &PauseGate{resumeCh: ch}
}

func (g *PauseGate) Paused() bool { return g.paused.Load() }

func (g *PauseGate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused.Swap(true) {
		return // already paused
	}
	g.resumeCh = make(chan struct{})
}

func (g *PauseGate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused.Swap(false) {
		return // already released
	}
	close(g.resumeCh)
}

// Wait blocks while the gate is paused. It returns true once released,
// false if shutdown fired first. Does not release input/output handles
// (spec.md §4.5: "Paused means: skip the process() call and block on a
// condition; does not release input/output handles").
func (g *PauseGate) Wait(shutdown <-chan struct{}) bool {
	for g.paused.Load() {
		g.mu.Lock()
		ch := g.resumeCh
		g.mu.Unlock()
		select {
		case <-ch:
		case <-shutdown:
			return false
		}
	}
	return true
}
