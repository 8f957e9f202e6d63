package builtin_test

import (
	"testing"

	"github.com/tatolab/streamrt/builtin"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/link"
	"github.com/tatolab/streamrt/port"
	"github.com/tatolab/streamrt/registry"
)

func TestRegisterAllRejectsDuplicateTypeNames(t *testing.T) {
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if err := builtin.RegisterAll(reg); err == nil {
		t.Fatalf("expected second RegisterAll against the same registry to fail")
	}
}

// TestEmitterToCollector wires an Emitter's "out" directly to a
// Collector's "in" through a real link.Instance, bypassing the compiler,
// to exercise both processors' Setup/Process against the actual port
// types rather than a mock.
func TestEmitterToCollector(t *testing.T) {
	ef := builtin.NewEmitterFactory()
	cf := builtin.NewCollectorFactory()

	emitterInst, err := ef.New(core.ProcessorSpec{TypeName: "Emitter"})
	if err != nil {
		t.Fatalf("Emitter.New: %v", err)
	}
	collectorInst, err := cf.New(core.ProcessorSpec{TypeName: "Collector"})
	if err != nil {
		t.Fatalf("Collector.New: %v", err)
	}
	emitter := emitterInst.(*builtin.Emitter)
	collector := collectorInst.(*builtin.Collector)

	outWiring := port.NewWiring("emitter-1", ef.Descriptor().Ports)
	inWiring := port.NewWiring("collector-1", cf.Descriptor().Ports)

	linkID := core.NewLinkId()
	inst := link.NewInstance(linkID, core.Video, core.Video.DefaultCapacity)
	outWiring.Outputs["out"].Install(linkID, inst.NewWriter())
	if err := inWiring.Inputs["in"].Install(linkID, inst.NewReader()); err != nil {
		t.Fatalf("Install reader: %v", err)
	}

	emitterCtx := core.NewRuntimeContext(core.NewProcessorId(), core.NewPauseGate())
	emitterCtx.BindPorts(map[string]core.OutputHandle{"out": outWiring.Outputs["out"]}, nil)
	if err := emitter.Setup(emitterCtx); err != nil {
		t.Fatalf("Emitter.Setup: %v", err)
	}

	collectorCtx := core.NewRuntimeContext(core.NewProcessorId(), core.NewPauseGate())
	collectorCtx.BindPorts(nil, map[string]core.InputHandle{"in": inWiring.Inputs["in"]})
	if err := collector.Setup(collectorCtx); err != nil {
		t.Fatalf("Collector.Setup: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := emitter.Process(); err != nil {
			t.Fatalf("Emitter.Process: %v", err)
		}
	}
	if err := collector.Process(); err != nil {
		t.Fatalf("Collector.Process: %v", err)
	}

	got := collector.Received()
	if len(got) != 1 {
		// Video is read-latest: draining after all three pushes only
		// surfaces the newest value, per spec.md §4.1.
		t.Fatalf("expected read-latest to surface exactly 1 value, got %d: %v", len(got), got)
	}
	if got[0].(int64) != 3 {
		t.Fatalf("expected latest value 3, got %v", got[0])
	}
}
