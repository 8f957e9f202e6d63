// Package mono provides a monotonic clock source; it backs
// core.RuntimeContext.Now, the clock handle given to processors.
/*
 * Copyright (c) 2018-2021, NVIDIA CORPORATION. All rights reserved.
 */
package mono

import "time"

var start = time.Now()

// NanoTime returns nanoseconds elapsed since process start. Monotonic,
// unaffected by wall-clock adjustments; not comparable across processes.
func NanoTime() int64 { return time.Since(start).Nanoseconds() }

func Since(t int64) time.Duration { return time.Duration(NanoTime() - t) }
