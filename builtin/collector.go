/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package builtin

import (
	"sync"

	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/link"
	"github.com/tatolab/streamrt/registry"
)

// Collector is the Reactive-mode sink named in spec.md §8 scenario 1
// ("Register types ... 'Collector' (one input 'in', kind=Video)"). Process
// drains everything currently available on "in" and appends it to an
// in-memory log a test can inspect after Stop(). It does no I/O and holds
// no OS resources, so it declares AffinityShared rather than tying up a
// dedicated goroutine.
type Collector struct {
	in core.InputHandle

	mu  sync.Mutex
	log []any
}

func NewCollectorFactory() registry.Factory { return collectorFactory{} }

type collectorFactory struct{}

func (collectorFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		TypeName: "Collector",
		Ports: []core.PortSpec{
			{Name: "in", Kind: core.Video, Direction: core.DirInput},
		},
		Mode:     core.ModeReactive,
		Priority: core.PriorityNormal,
		Affinity: core.AffinityShared,
	}
}

func (collectorFactory) New(spec core.ProcessorSpec) (core.Processor, error) {
	return &Collector{}, nil
}

func (c *Collector) Setup(ctx *core.RuntimeContext) error {
	in, ok := ctx.Input("in")
	if !ok {
		return nil
	}
	c.in = in
	return nil
}

// Process drains every value currently pending on "in"; a Reactive runner
// calls this once per wakeup, so draining fully here avoids missing a
// second push that landed between the wakeup and this call returning.
func (c *Collector) Process() error {
	if c.in == nil {
		return nil
	}
	for {
		v, err := c.in.Pop()
		if err == link.ErrEmpty {
			return nil
		}
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.log = append(c.log, v)
		c.mu.Unlock()
	}
}

func (c *Collector) Teardown() error { return nil }

// Received returns a snapshot of every value collected so far.
func (c *Collector) Received() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.log))
	copy(out, c.log)
	return out
}
