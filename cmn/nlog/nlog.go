// Package nlog is the runtime's logger: leveled, timestamped, and
// controlled by a single environment variable (STREAMRT_LOG_LEVEL), per
// spec.md §6 "one log-filter variable controls verbosity". Adapted from
// the teacher's buffered/rotating cmn/nlog, trimmed to a direct io.Writer
// sink since the graph runtime has no per-node log-file rotation needs.
/*
 * Copyright (c) 2023, NVIDIA CORPORATION. All rights reserved.
 */
package nlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type severity int

const (
	sevInfo severity = iota
	sevWarn
	sevErr
)

func (s severity) String() string {
	switch s {
	case sevWarn:
		return "W"
	case sevErr:
		return "E"
	default:
		return "I"
	}
}

var (
	mw          sync.Mutex
	out         io.Writer = os.Stderr
	minSeverity           = sevInfo
)

func init() {
	switch os.Getenv("STREAMRT_LOG_LEVEL") {
	case "warn", "warning":
		minSeverity = sevWarn
	case "error":
		minSeverity = sevErr
	}
}

// SetOutput redirects log output; used by tests to capture lines.
func SetOutput(w io.Writer) {
	mw.Lock()
	defer mw.Unlock()
	out = w
}

func log(sev severity, format string, args ...any) {
	if sev < minSeverity {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	mw.Lock()
	fmt.Fprintf(out, "%s %s %s\n", time.Now().Format("15:04:05.000000"), sev, msg)
	mw.Unlock()
}

func Infof(format string, args ...any)    { log(sevInfo, format, args...) }
func Infoln(args ...any)                  { log(sevInfo, fmt.Sprint(args...)) }
func Warningf(format string, args ...any) { log(sevWarn, format, args...) }
func Warningln(args ...any)               { log(sevWarn, fmt.Sprint(args...)) }
func Errorf(format string, args ...any)   { log(sevErr, format, args...) }
func Errorln(args ...any)                 { log(sevErr, fmt.Sprint(args...)) }
