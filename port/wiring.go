package port

import "github.com/tatolab/streamrt/core"

// Wiring is the PortWiring component attached to every processor entity:
// the table of input/output ports declared at registration, keyed by
// local port name (spec.md §3 "PortWiring (the table of writer/reader
// handles per local port name)"). It starts empty at processor creation
// and is populated by the compiler's wire phase.
type Wiring struct {
	Inputs  map[string]*InputPort
	Outputs map[string]*OutputPort

	// DataReady is signaled (non-blocking, single-slot) whenever a push
	// lands on any link feeding one of this processor's input ports.
	// The execution runner's reactive loop blocks on it (spec.md §4.5
	// "Reactive: ... waits for a wakeup event triggered by upstream
	// pushes").
	DataReady chan struct{}
}

// NewWiring builds empty input/output ports for every declared PortSpec;
// the compiler's create phase attaches this before any link exists
// (spec.md §4.4 step 4). ownerID labels this processor's output ports in
// fan-out failure metrics.
func NewWiring(ownerID string, specs []core.PortSpec) *Wiring {
	w := &Wiring{
		Inputs:    make(map[string]*InputPort),
		Outputs:   make(map[string]*OutputPort),
		DataReady: make(chan struct{}, 1),
	}
	for _, s := range specs {
		if s.Direction == core.DirInput {
			w.Inputs[s.Name] = NewInputPort(s)
		} else {
			w.Outputs[s.Name] = NewOutputPort(ownerID, s)
		}
	}
	return w
}

// Notify signals DataReady without blocking if a wakeup is already
// pending.
func (w *Wiring) Notify() {
	select {
	case w.DataReady <- struct{}{}:
	default:
	}
}
