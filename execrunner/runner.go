package execrunner

import (
	"time"

	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/metrics"
	"github.com/tatolab/streamrt/port"
	"github.com/tatolab/streamrt/registry"
)

// idleReactiveTimeout bounds the reactive loop's wait on DataReady so a
// paused-then-resumed or shutdown-racing processor cannot block its
// runner goroutine forever on a wakeup that already arrived and was
// consumed by a previous iteration.
const idleReactiveTimeout = 250 * time.Millisecond

// Spawn starts the execution loop for one processor according to its
// descriptor's ExecMode (spec.md §4.5) and returns the ThreadHandle the
// compiler stores as component.KindThread. onError is called at most
// once, with the first error returned by Process/Setup-adjacent calls,
// so the caller can transition the processor to Error state. pm may be
// nil; when set, its counters back the processor's to_json() "metrics"
// sub-object.
func Spawn(
	id core.ProcessorId,
	proc core.Processor,
	desc registry.Descriptor,
	wiring *port.Wiring,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) *ThreadHandle {
	th := newThreadHandle()
	go func() {
		defer th.finish()
		switch desc.Mode {
		case core.ModeReactive:
			runReactive(id, proc, wiring, gate, shutdown, pm, onError)
		case core.ModeExternal:
			runExternal(id, proc, gate, shutdown, pm, onError)
		default:
			runContinuous(id, proc, desc, gate, shutdown, pm, onError)
		}
	}()
	return th
}

func runContinuous(
	id core.ProcessorId,
	proc core.Processor,
	desc registry.Descriptor,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) {
	interval := desc.Interval
	for {
		if !gate.Wait(shutdown.C()) {
			return
		}
		select {
		case <-shutdown.C():
			return
		default:
		}
		metrics.ProcessorLoopIterations.WithLabelValues(string(id), "continuous").Inc()
		if err := proc.Process(); err != nil {
			reportError(id, err, pm, onError)
			return
		}
		if pm != nil {
			pm.Processed.Inc()
		}
		if interval <= 0 {
			continue
		}
		t := time.NewTimer(interval)
		select {
		case <-t.C:
		case <-shutdown.C():
			t.Stop()
			return
		}
	}
}

// runReactive blocks on the processor's DataReady channel (fed by
// upstream pushes, port.Wiring.Notify) between calls. Process() is
// expected to drain every bound input port itself before returning
// (spec.md §4.5 "runs until all input rings are drained").
func runReactive(
	id core.ProcessorId,
	proc core.Processor,
	wiring *port.Wiring,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) {
	for {
		if !gate.Wait(shutdown.C()) {
			return
		}
		select {
		case <-wiring.DataReady:
		case <-time.After(idleReactiveTimeout):
			continue
		case <-shutdown.C():
			return
		}
		metrics.ProcessorLoopIterations.WithLabelValues(string(id), "reactive").Inc()
		if err := proc.Process(); err != nil {
			reportError(id, err, pm, onError)
			return
		}
		if pm != nil {
			pm.Processed.Inc()
		}
	}
}

// runExternal hands control to the processor's Start callback once, if
// it implements Starter, then parks until shutdown (spec.md §4.5
// "Externally driven: control belongs to an external callback").
func runExternal(
	id core.ProcessorId,
	proc core.Processor,
	gate *core.PauseGate,
	shutdown *ShutdownChannel,
	pm *metrics.ProcessorMetrics,
	onError func(error),
) {
	if !gate.Wait(shutdown.C()) {
		return
	}
	metrics.ProcessorLoopIterations.WithLabelValues(string(id), "external").Inc()
	if starter, ok := proc.(core.Starter); ok {
		if err := starter.Start(); err != nil {
			reportError(id, err, pm, onError)
			return
		}
	} else if err := proc.Process(); err != nil {
		reportError(id, err, pm, onError)
		return
	}
	if pm != nil {
		pm.Processed.Inc()
	}
	<-shutdown.C()
}

func reportError(id core.ProcessorId, err error, pm *metrics.ProcessorMetrics, onError func(error)) {
	metrics.ProcessorErrors.WithLabelValues(string(id)).Inc()
	if pm != nil {
		pm.Errors.Inc()
	}
	nlog.Errorf("processor %s: %v", id, err)
	if onError != nil {
		onError(err)
	}
}
