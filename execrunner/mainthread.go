package execrunner

import (
	"runtime"
	"sync"
	"time"

	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/metrics"
)

// MainThreadRunner cooperatively multiplexes every AffinityMainThread
// processor onto a single OS thread it locks for its own lifetime
// (spec.md §5 "AffinityMainThread: must run on the process main thread
// (OS GUI/GPU frameworks); multiplexed by the main-thread runner").
// Grounded on the teacher's DemandBase idle-poll loop (mirror/put_mirror.go),
// generalized from one xaction's idle check to a round-robin over several
// registered processors' Process() calls.
type MainThreadRunner struct {
	mu      sync.Mutex
	entries map[core.ProcessorId]*mtEntry

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type mtEntry struct {
	id       core.ProcessorId
	proc     core.Processor
	gate     *core.PauseGate
	shutdown *ShutdownChannel
	pm       *metrics.ProcessorMetrics
	onError  func(error)
	th       *ThreadHandle
}

func NewMainThreadRunner() *MainThreadRunner {
	return &MainThreadRunner{entries: make(map[core.ProcessorId]*mtEntry)}
}

// Register adds a processor to the round-robin and returns its
// ThreadHandle. Safe to call before or after Start.
func (m *MainThreadRunner) Register(
	id core.ProcessorId,
	proc core.Processor,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) *ThreadHandle {
	th := newThreadHandle()
	m.mu.Lock()
	m.entries[id] = &mtEntry{id: id, proc: proc, gate: gate, shutdown: shutdown, pm: pm, onError: onError, th: th}
	m.mu.Unlock()
	return th
}

// Unregister stops scheduling id and finishes its ThreadHandle so a
// teardown join completes.
func (m *MainThreadRunner) Unregister(id core.ProcessorId) {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if ok {
		e.th.finish()
	}
}

// Start locks the calling goroutine to its OS thread and runs the
// round-robin loop until Stop is called. The caller is expected to run
// this from whatever goroutine the embedding process designates as its
// main thread (spec.md §5).
func (m *MainThreadRunner) Start(tick time.Duration) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.mu.Unlock()
	defer close(m.doneCh)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-t.C:
			m.tickOnce()
		}
	}
}

func (m *MainThreadRunner) tickOnce() {
	m.mu.Lock()
	entries := make([]*mtEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	for _, e := range entries {
		select {
		case <-e.shutdown.C():
			continue
		default:
		}
		if !e.gate.Paused() {
			metrics.ProcessorLoopIterations.WithLabelValues(string(e.id), "external").Inc()
			if err := e.proc.Process(); err != nil {
				metrics.ProcessorErrors.WithLabelValues(string(e.id)).Inc()
				if e.pm != nil {
					e.pm.Errors.Inc()
				}
				nlog.Errorf("main-thread processor %s: %v", e.id, err)
				if e.onError != nil {
					e.onError(err)
				}
			} else if e.pm != nil {
				e.pm.Processed.Inc()
			}
		}
	}
}

func (m *MainThreadRunner) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	close(m.stopCh)
	done := m.doneCh
	m.mu.Unlock()
	<-done
}
