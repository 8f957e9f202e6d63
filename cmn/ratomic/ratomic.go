// Package ratomic provides typed atomic wrappers used as the lock-free
// primitive behind pause gates, shutdown flags, and runtime counters.
// Named ratomic (not atomic) the same way the teacher's cmn/cos/err.go
// aliases sync/atomic as "ratomic" to avoid shadowing this package.
/*
 * Copyright (c) 2018-2021, NVIDIA CORPORATION. All rights reserved.
 */
package ratomic

import "sync/atomic"

type Bool struct{ v atomic.Bool }

func (b *Bool) Load() bool       { return b.v.Load() }
func (b *Bool) Store(val bool)   { b.v.Store(val) }
func (b *Bool) Swap(val bool) bool { return b.v.Swap(val) }
func (b *Bool) CAS(old, new bool) bool { return b.v.CompareAndSwap(old, new) }

type Int32 struct{ v atomic.Int32 }

func (i *Int32) Load() int32        { return i.v.Load() }
func (i *Int32) Store(val int32)    { i.v.Store(val) }
func (i *Int32) Add(delta int32) int32 { return i.v.Add(delta) }
func (i *Int32) Inc() int32         { return i.v.Add(1) }
func (i *Int32) Dec() int32         { return i.v.Add(-1) }
func (i *Int32) Swap(val int32) int32 { return i.v.Swap(val) }
func (i *Int32) CAS(old, new int32) bool { return i.v.CompareAndSwap(old, new) }

type Int64 struct{ v atomic.Int64 }

func (i *Int64) Load() int64        { return i.v.Load() }
func (i *Int64) Store(val int64)    { i.v.Store(val) }
func (i *Int64) Add(delta int64) int64 { return i.v.Add(delta) }
func (i *Int64) Inc() int64         { return i.v.Add(1) }
func (i *Int64) Swap(val int64) int64 { return i.v.Swap(val) }
func (i *Int64) CAS(old, new int64) bool { return i.v.CompareAndSwap(old, new) }

type Uint32 struct{ v atomic.Uint32 }

func (u *Uint32) Load() uint32        { return u.v.Load() }
func (u *Uint32) Store(val uint32)    { u.v.Store(val) }
func (u *Uint32) Add(delta uint32) uint32 { return u.v.Add(delta) }
