package core_test

import (
	"testing"
	"time"

	"github.com/tatolab/streamrt/core"
)

// TestPauseGateWaitBlocksUntilResume exercises spec.md §4.5's pause gate:
// Wait blocks while paused and releases exactly when Resume is called.
func TestPauseGateWaitBlocksUntilResume(t *testing.T) {
	g := core.NewPauseGate()
	if g.Paused() {
		t.Fatalf("expected a new gate to start unpaused")
	}

	g.Pause()
	if !g.Paused() {
		t.Fatalf("expected Paused() true after Pause")
	}

	released := make(chan bool, 1)
	go func() {
		released <- g.Wait(make(chan struct{}))
	}()

	select {
	case <-released:
		t.Fatalf("expected Wait to block while the gate is paused")
	case <-time.After(20 * time.Millisecond):
	}

	g.Resume()
	select {
	case ok := <-released:
		if !ok {
			t.Fatalf("expected Wait to return true on Resume")
		}
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after Resume")
	}
}

// TestPauseGateWaitReturnsFalseOnShutdown exercises the shutdown-while-
// paused race: Wait must return false rather than hang forever.
func TestPauseGateWaitReturnsFalseOnShutdown(t *testing.T) {
	g := core.NewPauseGate()
	g.Pause()
	shutdown := make(chan struct{})

	done := make(chan bool, 1)
	go func() { done <- g.Wait(shutdown) }()
	close(shutdown)

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected Wait to return false when shutdown fires before Resume")
		}
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after shutdown")
	}
}

// TestPauseGatePauseAndResumeAreIdempotent guards against a double Pause
// or double Resume wedging the resumeCh swap logic.
func TestPauseGatePauseAndResumeAreIdempotent(t *testing.T) {
	g := core.NewPauseGate()
	g.Pause()
	g.Pause()
	if !g.Paused() {
		t.Fatalf("expected gate to remain paused after a second Pause")
	}
	g.Resume()
	g.Resume()
	if g.Paused() {
		t.Fatalf("expected gate to remain unpaused after a second Resume")
	}
	if !g.Wait(make(chan struct{})) {
		t.Fatalf("expected Wait to return true immediately once unpaused")
	}
}

// TestMessageKindStaticPolicies locks in spec.md §4.1's "a static
// property of the message kind, not a per-link option" invariant for the
// three built-in kinds.
func TestMessageKindStaticPolicies(t *testing.T) {
	cases := []struct {
		name     string
		kind     core.MessageKind
		read     core.ReadMode
		overflow core.OverflowPolicy
		capacity int
	}{
		{"video", core.Video, core.ReadLatest, core.OverflowDrop, 3},
		{"audio", core.Audio, core.ReadInOrder, core.OverflowError, 32},
		{"data", core.Data, core.ReadInOrder, core.OverflowDrop, 16},
	}
	for _, tc := range cases {
		if tc.kind.Read != tc.read {
			t.Errorf("%s: expected read mode %v, got %v", tc.name, tc.read, tc.kind.Read)
		}
		if tc.kind.Overflow != tc.overflow {
			t.Errorf("%s: expected overflow policy %v, got %v", tc.name, tc.overflow, tc.kind.Overflow)
		}
		if tc.kind.DefaultCapacity != tc.capacity {
			t.Errorf("%s: expected default capacity %d, got %d", tc.name, tc.capacity, tc.kind.DefaultCapacity)
		}
	}
}

func TestLookupMessageKindAndRegisterCustomKind(t *testing.T) {
	if _, ok := core.LookupMessageKind("telemetry"); ok {
		t.Fatalf("expected an unregistered kind name to report false")
	}
	core.RegisterMessageKind(core.MessageKind{Name: "telemetry", DefaultCapacity: 8, Read: core.ReadInOrder, Overflow: core.OverflowDrop})
	got, ok := core.LookupMessageKind("telemetry")
	if !ok || got.DefaultCapacity != 8 {
		t.Fatalf("expected the newly registered kind to be found, got %+v ok=%v", got, ok)
	}
}
