package core

import "github.com/tatolab/streamrt/cmn/mono"

// ProcessorSpec is the user-facing description passed to add_processor
// (spec.md §6): a processor type name looked up in the registry, a
// structured configuration document, and an optional display name.
type ProcessorSpec struct {
	TypeName    string
	Config      map[string]any
	DisplayName string
}

// Processor is the contract every user-defined unit of computation
// implements. The compiler calls Setup once after construction (§4.4
// step 6) and Teardown once during removal (§4.4 step 3); the execution
// runner calls Process per its declared ExecMode (§4.5).
type Processor interface {
	Setup(ctx *RuntimeContext) error
	Process() error
	Teardown() error
}

// ConfigApplier is implemented by processors that accept a config update
// without a full create/destroy cycle (spec.md §4.4 step 8). Processors
// that do not implement it cause config changes to be rejected with a
// lifecycle error.
type ConfigApplier interface {
	ApplyConfig(cfg map[string]any) error
}

// Starter is implemented by ModeExternal processors: the runner calls
// Start once and then never calls Process again; control belongs to the
// external callback (spec.md §4.5 "Externally driven").
type Starter interface {
	Start() error
}

// OutputHandle is the subset of port.OutputPort's method set a processor
// needs to publish values; defined here rather than imported to avoid a
// core <-> port import cycle (port already imports core for PortSpec).
type OutputHandle interface {
	Push(v any) (sent, failed int)
}

// InputHandle is the subset of port.InputPort's method set a processor
// needs to consume values, for the same reason as OutputHandle.
type InputHandle interface {
	Pop() (any, error)
}

// RuntimeContext is handed to Setup; it is the processor's only sanctioned
// channel back into the runtime (spec.md §4.4 step 6: "clock handle,
// pause-gate reference, shared scheduling services"), plus its bound
// input/output ports so Process() can move data without importing the
// port package directly.
type RuntimeContext struct {
	ProcessorID ProcessorId
	gate        *PauseGate
	outputs     map[string]OutputHandle
	inputs      map[string]InputHandle
}

func NewRuntimeContext(id ProcessorId, gate *PauseGate) *RuntimeContext {
	return &RuntimeContext{ProcessorID: id, gate: gate}
}

// BindPorts attaches the processor's wired ports; called by the compiler's
// setup phase before Setup() runs, after wire has installed every handle
// declared in this batch.
func (rc *RuntimeContext) BindPorts(outputs map[string]OutputHandle, inputs map[string]InputHandle) {
	rc.outputs, rc.inputs = outputs, inputs
}

// Output returns the named output port, or ok=false if the port name is
// unknown or (for an optional fan-out) currently unwired.
func (rc *RuntimeContext) Output(name string) (OutputHandle, bool) {
	h, ok := rc.outputs[name]
	return h, ok
}

// Input returns the named input port, or ok=false if the port name is
// unknown or currently unwired.
func (rc *RuntimeContext) Input(name string) (InputHandle, bool) {
	h, ok := rc.inputs[name]
	return h, ok
}

// Now returns the runtime's monotonic clock in nanoseconds.
func (rc *RuntimeContext) Now() int64 { return mono.NanoTime() }

// CheckPause lets a long-running Process() implementation yield
// opportunistically instead of only at the runner's loop head (spec.md
// §4.5 "Pause gate"). Returns false if the processor should abandon the
// current Process() call because shutdown was requested while paused.
func (rc *RuntimeContext) CheckPause(shutdown <-chan struct{}) bool {
	if rc.gate == nil {
		return true
	}
	return rc.gate.Wait(shutdown)
}
