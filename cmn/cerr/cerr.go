// Package cerr implements the structured error taxonomy of spec.md §7:
// every public call returns either success or an error carrying a kind and
// a message, never an unwound exception. Grounded on the teacher's typed
// error style (cmn/cos/err.go's ErrNotFound) generalized to a closed set
// of kinds, and on github.com/pkg/errors for wrap/cause chains.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package cerr

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindInvalidTopology Kind = "invalid_topology"
	KindInvalidConfig   Kind = "invalid_configuration"
	KindLifecycle       Kind = "lifecycle"
	KindResource        Kind = "resource"
	KindIO              Kind = "io"
)

// Error is the structured error every public streamrt call returns on
// failure: a closed Kind plus a human-readable Message, optionally
// wrapping an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func Wrap(kind Kind, cause error, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Cause: errors.WithStack(cause)}
}

func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// topology / config convenience constructors, used at the mutation call
// site per spec.md §7 "operations that violate topology fail at the
// mutation call (no commit needed)".

func Cycle(path string) *Error {
	return New(KindInvalidTopology, "cycle detected: %s", path)
}

func PortTypeMismatch(src, dst string) *Error {
	return New(KindInvalidTopology, "port type mismatch connecting %s -> %s", src, dst)
}

func InputAlreadyBound(port string) *Error {
	return New(KindInvalidTopology, "input %s has existing link", port)
}

func UnknownPort(proc, port string) *Error {
	return New(KindInvalidTopology, "processor %s has no port %q", proc, port)
}

func UnknownProcessorType(typ string) *Error {
	return New(KindInvalidTopology, "unknown processor type %q", typ)
}

func InvalidConfig(proc string, cause error) *Error {
	return Wrap(KindInvalidConfig, cause, "invalid configuration for %s", proc)
}

func LossyConfigRoundTrip(proc string) *Error {
	return New(KindInvalidConfig, "configuration for %s does not round-trip losslessly", proc)
}

func SetupFailed(proc string, cause error) *Error {
	return Wrap(KindLifecycle, cause, "setup failed for %s", proc)
}

func TeardownDeadlineExceeded(proc string) *Error {
	return New(KindLifecycle, "teardown deadline exceeded for %s", proc)
}
