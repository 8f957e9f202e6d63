// Package cos provides common low-level types and utilities shared across
// the processor graph runtime: ID generation and structured error
// accumulation.
/*
 * Copyright (c) 2018-2023, NVIDIA CORPORATION. All rights reserved.
 */
package cos

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tatolab/streamrt/cmn/debug"
)

type (
	ErrNotFound struct {
		what string
	}
	// Errs accumulates distinct errors up to a cap; used by the compiler
	// to report partial-success results from a single commit (spec.md
	// §4.4: "remaining operations in that phase continue, but the overall
	// result reports partial success").
	Errs struct {
		errs []error
		mu   sync.Mutex
	}
)

const maxErrs = 16

func NewErrNotFound(format string, a ...any) *ErrNotFound {
	return &ErrNotFound{fmt.Sprintf(format, a...)}
}

func (e *ErrNotFound) Error() string { return e.what + " does not exist" }

func IsErrNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

func (e *Errs) Add(err error) {
	debug.Assert(err != nil)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, added := range e.errs {
		if added.Error() == err.Error() {
			return
		}
	}
	if len(e.errs) < maxErrs {
		e.errs = append(e.errs, err)
	}
}

func (e *Errs) Cnt() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// JoinErr returns nil when empty, otherwise a single error joining every
// distinct error added so far (errors.Is/As still work via errors.Join).
func (e *Errs) JoinErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.errs) == 0 {
		return nil
	}
	return errors.Join(e.errs...)
}

func (e *Errs) Error() string {
	if err := e.JoinErr(); err != nil {
		return err.Error()
	}
	return ""
}
