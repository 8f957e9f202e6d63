// Package execrunner implements spec.md §4.5: the per-processor
// execution loop for each of the three timing disciplines a processor
// type declares (continuous, reactive, externally driven), plus the
// shutdown/join/pause coordination shared by all three. Grounded on the
// teacher's mirror.XactPut worker-pool loop (mirror/put_copies.go,
// mirror/put_mirror.go): a goroutine-per-worker pattern guarded by a
// DemandBase-style idle/quiescence check, generalized here to one
// goroutine per processor with a PauseGate in place of DemandBase's
// idle timer.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package execrunner

import (
	"sync"
	"time"
)

// ShutdownChannel is the component.KindShutdown value: a close-once
// signal the teardown phase uses to tell a runner to stop (spec.md §4.4
// step 3).
type ShutdownChannel struct {
	ch   chan struct{}
	once sync.Once
}

func NewShutdownChannel() *ShutdownChannel {
	return &ShutdownChannel{ch: make(chan struct{})}
}

func (s *ShutdownChannel) C() <-chan struct{} { return s.ch }

func (s *ShutdownChannel) Close() { s.once.Do(func() { close(s.ch) }) }

// ThreadHandle is the component.KindThread value: the compiler's handle
// on a spawned runner goroutine, used to bound the teardown join (spec.md
// §5 "Cancellation/timeout": "a per-processor bounded deadline... beyond
// which the runtime forcibly detaches").
type ThreadHandle struct {
	done     chan struct{}
	detached bool
	mu       sync.Mutex
}

func newThreadHandle() *ThreadHandle {
	return &ThreadHandle{done: make(chan struct{})}
}

func (t *ThreadHandle) finish() { close(t.done) }

// Join blocks up to timeout for the runner goroutine to exit. If the
// deadline passes first it marks the handle detached and returns false;
// the goroutine is left to exit on its own, and its eventual access to
// torn-down link handles degrades safely rather than panicking (spec.md
// §9 "Weak handles").
func (t *ThreadHandle) Join(timeout time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(timeout):
		t.mu.Lock()
		t.detached = true
		t.mu.Unlock()
		return false
	}
}

func (t *ThreadHandle) Detached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.detached
}
