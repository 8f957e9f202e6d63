/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package builtin

import (
	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/link"
	"github.com/tatolab/streamrt/registry"
)

// DisplayScalingMode mirrors the original demo's ScalingMode enum
// (original_source/examples/graph-json-demo/src/main.rs); only the
// default is implemented here since cmd/graphdemo never overrides it.
type DisplayScalingMode int

const (
	ScaleFit DisplayScalingMode = iota
	ScaleStretch
	ScaleCrop
)

// DisplayConfig mirrors the original's DisplayConfig{width, height,
// title, scaling_mode}.
type DisplayConfig struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Title       string             `json:"title"`
	ScalingMode DisplayScalingMode `json:"scaling_mode"`
}

// Display is a Reactive-mode sink standing in for an on-screen renderer;
// Process logs the frame it would have rendered rather than touching a
// real window surface.
type Display struct {
	cfg DisplayConfig
	in  core.InputHandle
}

func NewDisplayFactory() registry.Factory { return displayFactory{} }

type displayFactory struct{}

func (displayFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		TypeName: "Display",
		Ports: []core.PortSpec{
			{Name: "video", Kind: core.Video, Direction: core.DirInput},
		},
		Mode:     core.ModeReactive,
		Priority: core.PriorityHigh,
		Affinity: core.AffinityMainThread,
	}
}

func (displayFactory) New(spec core.ProcessorSpec) (core.Processor, error) {
	d := &Display{cfg: DisplayConfig{Width: 1920, Height: 1080, Title: "streamrt"}}
	if w, ok := spec.Config["width"].(float64); ok {
		d.cfg.Width = int(w)
	}
	if h, ok := spec.Config["height"].(float64); ok {
		d.cfg.Height = int(h)
	}
	if t, ok := spec.Config["title"].(string); ok {
		d.cfg.Title = t
	}
	return d, nil
}

func (d *Display) Setup(ctx *core.RuntimeContext) error {
	in, ok := ctx.Input("video")
	if !ok {
		return nil
	}
	d.in = in
	return nil
}

func (d *Display) Process() error {
	if d.in == nil {
		return nil
	}
	for {
		v, err := d.in.Pop()
		if err == link.ErrEmpty {
			return nil
		}
		if err != nil {
			return err
		}
		nlog.Infof("display %q (%dx%d): rendering %v", d.cfg.Title, d.cfg.Width, d.cfg.Height, v)
	}
}

func (d *Display) Teardown() error { return nil }
