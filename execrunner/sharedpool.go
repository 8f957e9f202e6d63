package execrunner

import (
	"sync"
	"time"

	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/metrics"
)

// DefaultSharedPoolSize bounds how many worker goroutines back
// AffinityShared (spec.md §5: "cooperates on a small shared pool for
// lightweight processors"). Grounded on the teacher's mirror.XactPut
// worker pool (mirror/put_copies.go: a fixed-size slice of worker
// goroutines, not one per unit of work).
const DefaultSharedPoolSize = 4

// DefaultSharedPoolTick is the poll interval each worker uses between
// round-robin passes over its assigned processors.
const DefaultSharedPoolTick = 5 * time.Millisecond

// SharedPoolRunner multiplexes every AffinityShared processor onto a
// small fixed-size pool of goroutines instead of one goroutine per
// processor, so a graph with many lightweight processors doesn't pay a
// dedicated OS-backed goroutine for each of them. Grounded on the same
// mirror.XactPut worker-pool pattern cited in this package's doc
// comment (mirror/put_copies.go, mirror/put_mirror.go), here sized to a
// constant pool instead of one worker per target mountpath.
type SharedPoolRunner struct {
	workers []*sharedWorker

	mu   sync.Mutex
	next int // round-robin cursor over workers, for Register's load spread
}

type sharedWorker struct {
	mu      sync.Mutex
	entries map[core.ProcessorId]*mtEntry

	tick   time.Duration
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSharedPoolRunner starts size worker goroutines immediately, each
// polling its assigned processors every tick. Unlike MainThreadRunner,
// the pool owns and starts its own goroutines since AffinityShared
// processors carry no OS-thread-identity requirement.
func NewSharedPoolRunner(size int, tick time.Duration) *SharedPoolRunner {
	if size <= 0 {
		size = DefaultSharedPoolSize
	}
	if tick <= 0 {
		tick = DefaultSharedPoolTick
	}
	p := &SharedPoolRunner{workers: make([]*sharedWorker, size)}
	for i := range p.workers {
		w := &sharedWorker{
			entries: make(map[core.ProcessorId]*mtEntry),
			tick:    tick,
			stopCh:  make(chan struct{}),
			doneCh:  make(chan struct{}),
		}
		p.workers[i] = w
		go w.run()
	}
	return p
}

// Register assigns a processor to whichever worker is next in the
// round-robin and returns its ThreadHandle. Safe to call concurrently.
func (p *SharedPoolRunner) Register(
	id core.ProcessorId,
	proc core.Processor,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) *ThreadHandle {
	th := newThreadHandle()

	p.mu.Lock()
	w := p.workers[p.next%len(p.workers)]
	p.next++
	p.mu.Unlock()

	w.mu.Lock()
	w.entries[id] = &mtEntry{id: id, proc: proc, gate: gate, shutdown: shutdown, pm: pm, onError: onError, th: th}
	w.mu.Unlock()
	return th
}

// Unregister removes id from whichever worker holds it and finishes its
// ThreadHandle so a teardown join completes.
func (p *SharedPoolRunner) Unregister(id core.ProcessorId) {
	for _, w := range p.workers {
		w.mu.Lock()
		e, ok := w.entries[id]
		delete(w.entries, id)
		w.mu.Unlock()
		if ok {
			e.th.finish()
			return
		}
	}
}

// Stop halts every worker goroutine. Entries still registered at Stop
// time never finish their ThreadHandle; callers are expected to
// Unregister before Stop during an orderly shutdown.
func (p *SharedPoolRunner) Stop() {
	for _, w := range p.workers {
		close(w.stopCh)
	}
	for _, w := range p.workers {
		<-w.doneCh
	}
}

func (w *sharedWorker) run() {
	defer close(w.doneCh)
	t := time.NewTicker(w.tick)
	defer t.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-t.C:
			w.tickOnce()
		}
	}
}

func (w *sharedWorker) tickOnce() {
	w.mu.Lock()
	entries := make([]*mtEntry, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	w.mu.Unlock()

	for _, e := range entries {
		select {
		case <-e.shutdown.C():
			continue
		default:
		}
		if e.gate.Paused() {
			continue
		}
		metrics.ProcessorLoopIterations.WithLabelValues(string(e.id), "shared").Inc()
		if err := e.proc.Process(); err != nil {
			metrics.ProcessorErrors.WithLabelValues(string(e.id)).Inc()
			if e.pm != nil {
				e.pm.Errors.Inc()
			}
			nlog.Errorf("shared-pool processor %s: %v", e.id, err)
			if e.onError != nil {
				e.onError(err)
			}
		} else if e.pm != nil {
			e.pm.Processed.Inc()
		}
	}
}
