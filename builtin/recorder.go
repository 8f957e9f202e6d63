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

// RecorderConfig mirrors the original demo's Mp4WriterConfig{output_path,
// video_bitrate, audio_bitrate}.
type RecorderConfig struct {
	OutputPath   string `json:"output_path"`
	VideoBitrate int    `json:"video_bitrate"`
	AudioBitrate int    `json:"audio_bitrate"`
}

// Recorder is a Reactive-mode sink standing in for an MP4 muxer; it logs
// each frame it would have written rather than touching a real encoder.
type Recorder struct {
	cfg     RecorderConfig
	in      core.InputHandle
	written int64
}

func NewRecorderFactory() registry.Factory { return recorderFactory{} }

type recorderFactory struct{}

func (recorderFactory) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		TypeName: "Recorder",
		Ports: []core.PortSpec{
			{Name: "video", Kind: core.Video, Direction: core.DirInput},
		},
		Mode:     core.ModeReactive,
		Priority: core.PriorityNormal,
		Affinity: core.AffinityOwnThread,
	}
}

func (recorderFactory) New(spec core.ProcessorSpec) (core.Processor, error) {
	r := &Recorder{cfg: RecorderConfig{OutputPath: "/tmp/recording.mp4", VideoBitrate: 5_000_000, AudioBitrate: 128_000}}
	if p, ok := spec.Config["output_path"].(string); ok {
		r.cfg.OutputPath = p
	}
	return r, nil
}

func (r *Recorder) Setup(ctx *core.RuntimeContext) error {
	in, ok := ctx.Input("video")
	if !ok {
		return nil
	}
	r.in = in
	return nil
}

func (r *Recorder) Process() error {
	if r.in == nil {
		return nil
	}
	for {
		v, err := r.in.Pop()
		if err == link.ErrEmpty {
			return nil
		}
		if err != nil {
			return err
		}
		r.written++
		nlog.Infof("recorder %q: muxed frame %d: %v", r.cfg.OutputPath, r.written, v)
	}
}

func (r *Recorder) Teardown() error { return nil }
