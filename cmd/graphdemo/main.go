// Command graphdemo builds a small camera -> {display, recorder} graph and
// prints its committed JSON snapshot to stdout, adapted from the original
// graph-json-demo example
// (original_source/examples/graph-json-demo/src/main.rs): construct a
// runtime, add processors, connect a fan-out, then serialize the graph.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"fmt"
	"os"

	"github.com/tatolab/streamrt"
	"github.com/tatolab/streamrt/builtin"
	"github.com/tatolab/streamrt/cmn/nlog"
	"github.com/tatolab/streamrt/core"
	"github.com/tatolab/streamrt/registry"
)

func main() {
	if err := run(); err != nil {
		nlog.Errorf("graphdemo: %v", err)
		os.Exit(1)
	}
}

func run() error {
	reg := registry.New()
	if err := builtin.RegisterAll(reg); err != nil {
		return err
	}

	rt := streamrt.New(reg, streamrt.BatchAutomatically)
	defer rt.Stop()

	camera, err := rt.AddProcessor(core.ProcessorSpec{
		TypeName: "Camera",
		Config:   map[string]any{"device_id": "device-abc-123"},
	})
	if err != nil {
		return err
	}

	display, err := rt.AddProcessor(core.ProcessorSpec{
		TypeName:    "Display",
		DisplayName: "My Display",
		Config:      map[string]any{"width": float64(1920), "height": float64(1080), "title": "My Display"},
	})
	if err != nil {
		return err
	}

	recorder, err := rt.AddProcessor(core.ProcessorSpec{
		TypeName: "Recorder",
		Config:   map[string]any{"output_path": "/tmp/recording.mp4"},
	})
	if err != nil {
		return err
	}

	if _, err := rt.Connect(core.PortRef{Processor: camera, Port: "video"}, core.PortRef{Processor: display, Port: "video"}, 0); err != nil {
		return err
	}
	if _, err := rt.Connect(core.PortRef{Processor: camera, Port: "video"}, core.PortRef{Processor: recorder, Port: "video"}, 0); err != nil {
		return err
	}

	out, err := rt.ToJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
