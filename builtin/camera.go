/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package builtin

import (
	"time"

	"github.com/tatolab/streamrt/cmn/cos"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/registry"
)

// CameraConfig mirrors the original demo's CameraConfig{device_id}
// (original_source/examples/graph-json-demo/src/main.rs).
type CameraConfig struct {
	DeviceID string `json:"device_id"`
}

// Frame is the payload Camera pushes on "video": a sequence number and
// the originating device, standing in for an actual decoded frame buffer.
type Frame struct {
	Seq      int64  `json:"seq"`
	DeviceID string `json:"device_id"`
}

// Camera is a Continuous-mode source standing in for a hardware capture
// device; cmd/graphdemo uses it in place of the original's real camera
// backend.
type Camera struct {
	deviceID string
	out      core.OutputHandle
	seq      int64
}

func NewCameraFactory() registry.Factory { return cameraFactory{} }

type cameraFactory struct{}

func (cameraFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		TypeName: "Camera",
		Ports: []core.PortSpec{
			{Name: "video", Kind: core.Video, Direction: core.DirOutput},
		},
		Mode:     core.ModeContinuous,
		Interval: 33 * time.Millisecond,
		Priority: core.PriorityHigh,
		Affinity: core.AffinityOwnThread,
	}
}

func (cameraFactory) New(spec core.ProcessorSpec) (core.Processor, error) {
	deviceID, _ := spec.Config["device_id"].(string)
	if deviceID == "" {
		deviceID = "device-" + cos.GenUUID()
	}
	return &Camera{deviceID: deviceID}, nil
}

func (c *Camera) Setup(ctx *core.RuntimeContext) error {
	out, ok := ctx.Output("video")
	if !ok {
		return nil
	}
	c.out = out
	return nil
}

func (c *Camera) Process() error {
	c.seq++
	if c.out != nil {
		c.out.Push(Frame{Seq: c.seq, DeviceID: c.deviceID})
	}
	return nil
}

func (c *Camera) Teardown() error { return nil }
