/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package builtin

import (
	"time"

	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/registry"
)

// Emitter is the Continuous-mode source named in spec.md §8 scenario 1
// ("Register types 'Emitter' (one output 'out', kind=Video)"). Process
// pushes the next integer in a monotonically increasing sequence onto its
// "out" port.
type Emitter struct {
	out  core.OutputHandle
	next int64
}

// NewEmitterFactory returns a Factory producing Emitter instances.
func NewEmitterFactory() registry.Factory { return emitterFactory{} }

type emitterFactory struct{}

func (emitterFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		TypeName: "Emitter",
		Ports: []core.PortSpec{
			{Name: "out", Kind: core.Video, Direction: core.DirOutput},
		},
		Mode:     core.ModeContinuous,
		Interval: 5 * time.Millisecond,
		Priority: core.PriorityNormal,
		Affinity: core.AffinityOwnThread,
	}
}

func (emitterFactory) New(spec core.ProcessorSpec) (core.Processor, error) {
	return &Emitter{}, nil
}

func (e *Emitter) Setup(ctx *core.RuntimeContext) error {
	out, ok := ctx.Output("out")
	if !ok {
		return nil // fan-out may be empty; Process becomes a no-op producer
	}
	e.out = out
	return nil
}

func (e *Emitter) Process() error {
	e.next++
	if e.out != nil {
		e.out.Push(e.next)
	}
	return nil
}

func (e *Emitter) Teardown() error { return nil }
