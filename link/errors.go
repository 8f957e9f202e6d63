// Package link implements the Link Channel of spec.md §4.1: a bounded
// SPSC ring buffer of a single typed message, plus weak writer/reader
// handles that degrade gracefully once the owning LinkInstance is gone.
// There is no teacher file that implements an SPSC ring directly; the
// closest grounding is the teacher's memsys slab/pool ownership model
// (strong owner, handed-out references) and transport's Obj/ObjHdr
// framing (a typed, header-plus-payload unit moving through a bounded
// channel) — see transport/api.go. The weak-handle degrade-don't-fault
// discipline follows spec.md §9 DESIGN NOTES "Weak handles over reference
// cycles" directly.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package link

import "errors"

var (
	// ErrEmpty is returned by pop_next/pop_latest when no value is
	// available, including when the link has been disconnected.
	ErrEmpty = errors.New("link: empty")
	// ErrDropped is returned by push when the ring is full and the
	// message kind's overflow policy is OverflowError, or when the
	// writer handle is weak-referencing a closed LinkInstance.
	ErrDropped = errors.New("link: dropped")
)
