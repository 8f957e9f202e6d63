package hk_test

import (
	"testing"
	"time"

	"github.com/tatolab/streamrt/hk"
)

// TestRegRunsOnItsOwnInterval exercises the basic periodic-callback
// contract: a job registered with Reg fires repeatedly without the
// caller driving it.
func TestRegRunsOnItsOwnInterval(t *testing.T) {
	h := hk.New()
	fired := make(chan struct{}, 4)
	h.Reg("tick", func() time.Duration {
		select {
		case fired <- struct{}{}:
		default:
		}
		return 5 * time.Millisecond
	}, 5*time.Millisecond)
	defer h.Unreg("tick")

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("expected the registered job to fire at least once")
	}
}

// TestUnregStopsTheJob exercises that Unreg actually terminates the
// job's goroutine rather than merely forgetting its name.
func TestUnregStopsTheJob(t *testing.T) {
	h := hk.New()
	var calls int
	done := make(chan struct{})
	h.Reg("stoppable", func() time.Duration {
		calls++
		return time.Millisecond
	}, time.Millisecond)

	time.Sleep(10 * time.Millisecond)
	h.Unreg("stoppable")
	seenAtStop := calls
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(done)
	}()
	<-done
	if calls > seenAtStop+1 {
		t.Fatalf("expected no further calls after Unreg, went from %d to %d", seenAtStop, calls)
	}

	// Unreg on an unknown name is a no-op, not an error.
	h.Unreg("never-registered")
}

// TestReRegReplacesExistingJob exercises behavior documented on Reg
// itself: "Re-registering an existing name replaces it" rather than
// running two jobs under the same name.
func TestReRegReplacesExistingJob(t *testing.T) {
	h := hk.New()
	first := make(chan struct{}, 1)
	h.Reg("job", func() time.Duration {
		select {
		case first <- struct{}{}:
		default:
		}
		return time.Hour
	}, time.Millisecond)

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatalf("expected the first registration to fire")
	}

	second := make(chan struct{}, 1)
	h.Reg("job", func() time.Duration {
		select {
		case second <- struct{}{}:
		default:
		}
		return time.Hour
	}, time.Millisecond)
	defer h.Unreg("job")

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatalf("expected the replacement registration to fire")
	}
}

// TestAfterCancel exercises the one-shot After helper: a scheduled
// callback fires, and a canceled one never does.
func TestAfterCancel(t *testing.T) {
	fired := make(chan struct{})
	hk.After(5*time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("expected the scheduled callback to fire")
	}

	fired2 := make(chan struct{})
	cancel2 := hk.After(20*time.Millisecond, func() { close(fired2) })
	cancel2()
	select {
	case <-fired2:
		t.Fatalf("expected the canceled callback to never fire")
	case <-time.After(40 * time.Millisecond):
	}
}
