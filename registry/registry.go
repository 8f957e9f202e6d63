// Package registry implements spec.md §4 "Registry + Factory": a lookup
// from processor-type name to port metadata and constructor. Grounded
// directly on the teacher's xact/xreg package, whose Renewable interface
// (New/Kind/Get) plays the same role for xaction types that Factory plays
// here for processor types — a type name resolves to a constructor plus
// static metadata, looked up once per compiler cycle.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/tatolab/streamrt/cmn/cerr"
	"github.com/tatolab/streamrt/core"
)

// Descriptor is the static metadata a processor type declares once, at
// registration (spec.md §4.2, §4.5): its ports, execution mode, and
// scheduling requirements.
type Descriptor struct {
	TypeName string
	Ports    []core.PortSpec
	Mode     core.ExecMode
	// Interval is the inter-call sleep for ModeContinuous processors.
	Interval time.Duration
	Priority core.Priority
	Affinity core.ThreadAffinity
}

// Factory constructs a fresh Processor instance for a given spec. New is
// called by the compiler's create phase (spec.md §4.4 step 4); it must
// not perform I/O that depends on other processors since ordering across
// the creation phase is only guaranteed topologically among processors
// connected by already-declared links.
type Factory interface {
	Descriptor() Descriptor
	New(spec core.ProcessorSpec) (core.Processor, error)
}

type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func New() *Registry { return &Registry{factories: make(map[string]Factory)} }

// Register validates port-name uniqueness within the type (spec.md §4.2
// "Duplicate port names within one processor are rejected at
// registration") and rejects re-registering an existing type name.
func (r *Registry) Register(f Factory) error {
	d := f.Descriptor()
	if d.TypeName == "" {
		return cerr.New(cerr.KindInvalidConfig, "registry: processor type name must not be empty")
	}
	seen := make(map[string]struct{}, len(d.Ports))
	for _, p := range d.Ports {
		if _, dup := seen[p.Name]; dup {
			return cerr.New(cerr.KindInvalidConfig, "registry: %s: duplicate port name %q", d.TypeName, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[d.TypeName]; exists {
		return cerr.New(cerr.KindInvalidConfig, "registry: type %q already registered", d.TypeName)
	}
	r.factories[d.TypeName] = f
	return nil
}

// MustRegister panics on error; used at process init for built-in types.
func (r *Registry) MustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic(fmt.Sprintf("streamrt: %v", err))
	}
}

func (r *Registry) Lookup(typeName string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeName]
	return f, ok
}

func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	return out
}
