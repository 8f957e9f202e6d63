package execrunner_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/execrunner"
	"github.com/tatolab/streamrt/metrics"
	"github.com/tatolab/streamrt/port"
	"github.com/tatolab/streamrt/registry"
)

// countingProcessor counts Process() calls and can be told to fail on a
// given call number.
type countingProcessor struct {
	mu      sync.Mutex
	calls   int
	failAt  int
	failErr error
}

func (p *countingProcessor) Setup(*core.RuntimeContext) error { return nil }
func (p *countingProcessor) Teardown() error                  { return nil }
func (p *countingProcessor) Process() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failAt != 0 && p.calls == p.failAt {
		return p.failErr
	}
	return nil
}
func (p *countingProcessor) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestSpawnContinuousRunsUntilShutdown(t *testing.T) {
	proc := &countingProcessor{}
	desc := registry.Descriptor{Mode: core.ModeContinuous, Interval: time.Millisecond}
	gate := core.NewPauseGate()
	shutdown := execrunner.NewShutdownChannel()
	pm := metrics.NewProcessorMetrics()

	th := execrunner.Spawn("p-1", proc, desc, nil, gate, shutdown, pm, nil)
	time.Sleep(30 * time.Millisecond)
	shutdown.Close()
	if !th.Join(time.Second) {
		t.Fatalf("expected continuous runner to join after shutdown")
	}
	if proc.Calls() == 0 {
		t.Fatalf("expected at least one Process() call")
	}
	if pm.Processed.Load() == 0 {
		t.Fatalf("expected ProcessorMetrics.Processed to be incremented")
	}
}

func TestSpawnContinuousStopsAndReportsOnError(t *testing.T) {
	wantErr := errors.New("boom")
	proc := &countingProcessor{failAt: 1, failErr: wantErr}
	desc := registry.Descriptor{Mode: core.ModeContinuous, Interval: time.Millisecond}
	gate := core.NewPauseGate()
	shutdown := execrunner.NewShutdownChannel()
	pm := metrics.NewProcessorMetrics()

	var gotErr error
	var mu sync.Mutex
	th := execrunner.Spawn("p-2", proc, desc, nil, gate, shutdown, pm, func(err error) {
		mu.Lock()
		gotErr = err
		mu.Unlock()
	})
	if !th.Join(time.Second) {
		t.Fatalf("expected runner to exit promptly after Process() error")
	}
	mu.Lock()
	defer mu.Unlock()
	if gotErr != wantErr {
		t.Fatalf("expected onError to receive %v, got %v", wantErr, gotErr)
	}
	if pm.Errors.Load() != 1 {
		t.Fatalf("expected ProcessorMetrics.Errors == 1, got %d", pm.Errors.Load())
	}
}

func TestSpawnReactiveWaitsForNotify(t *testing.T) {
	proc := &countingProcessor{}
	wiring := port.NewWiring("p-3", nil)
	desc := registry.Descriptor{Mode: core.ModeReactive}
	gate := core.NewPauseGate()
	shutdown := execrunner.NewShutdownChannel()
	pm := metrics.NewProcessorMetrics()

	th := execrunner.Spawn("p-3", proc, desc, wiring, gate, shutdown, pm, nil)
	time.Sleep(20 * time.Millisecond)
	if proc.Calls() != 0 {
		t.Fatalf("expected no Process() calls before any Notify, got %d", proc.Calls())
	}
	wiring.Notify()
	deadline := time.Now().Add(time.Second)
	for proc.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if proc.Calls() == 0 {
		t.Fatalf("expected Notify to trigger a Process() call")
	}
	shutdown.Close()
	if !th.Join(time.Second) {
		t.Fatalf("expected reactive runner to join after shutdown")
	}
}

func TestThreadHandleJoinTimesOutAndDetaches(t *testing.T) {
	proc := &countingProcessor{}
	desc := registry.Descriptor{Mode: core.ModeContinuous, Interval: time.Hour}
	gate := core.NewPauseGate()
	shutdown := execrunner.NewShutdownChannel()

	th := execrunner.Spawn("p-4", proc, desc, nil, gate, shutdown, nil, nil)
	if th.Join(10 * time.Millisecond) {
		t.Fatalf("expected Join to time out before the hour-long interval elapses")
	}
	if !th.Detached() {
		t.Fatalf("expected ThreadHandle to be marked detached after a timed-out Join")
	}
	shutdown.Close()
}

func TestMainThreadRunnerSkipsPausedEntries(t *testing.T) {
	proc := &countingProcessor{}
	gate := core.NewPauseGate()
	gate.Pause()
	shutdown := execrunner.NewShutdownChannel()
	pm := metrics.NewProcessorMetrics()

	m := execrunner.NewMainThreadRunner()
	m.Register("p-5", proc, gate, shutdown, pm, nil)
	go m.Start(5 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	m.Stop()

	if proc.Calls() != 0 {
		t.Fatalf("expected a paused main-thread entry to never be ticked, got %d calls", proc.Calls())
	}
}

func TestMainThreadRunnerTicksRegisteredEntries(t *testing.T) {
	proc := &countingProcessor{}
	gate := core.NewPauseGate()
	shutdown := execrunner.NewShutdownChannel()
	pm := metrics.NewProcessorMetrics()

	m := execrunner.NewMainThreadRunner()
	th := m.Register("p-6", proc, gate, shutdown, pm, nil)
	go m.Start(5 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for proc.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	m.Stop()
	if proc.Calls() == 0 {
		t.Fatalf("expected the main-thread runner to tick the registered processor")
	}
	m.Unregister("p-6")
	if !th.Join(time.Second) {
		t.Fatalf("expected ThreadHandle to finish after Unregister")
	}
}
