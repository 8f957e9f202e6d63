package core

import "time"

// ExecMode is the timing discipline a processor declares at registration
// (spec.md §4.5).
type ExecMode int

const (
	// Continuous: the runner repeatedly invokes Process(), optionally
	// sleeping for Interval between calls.
	ModeContinuous ExecMode = iota
	// Reactive: the runner blocks on a data-ready event fed by upstream
	// pushes, then drains.
	ModeReactive
	// External: the runner calls Start() once and control passes to an
	// external callback (hardware interrupt, vsync, OS callback).
	ModeExternal
)

func (m ExecMode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeReactive:
		return "reactive"
	case ModeExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Priority selects the scheduling deadline class used to bind the
// runner's goroutine (spec.md §4.5 "bind priority").
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh            // loop budget < 33ms
	PriorityRealTime        // loop budget < 10ms
)

// Deadline returns the soft per-iteration budget implied by the priority
// class; it is informational (used for metrics and warnings) since the Go
// runtime does not expose OS real-time scheduling classes portably.
func (p Priority) Deadline() time.Duration {
	switch p {
	case PriorityRealTime:
		return 10 * time.Millisecond
	case PriorityHigh:
		return 33 * time.Millisecond
	default:
		return 0
	}
}

// ThreadAffinity is the compiler's scheduling declaration for where a
// processor's runner executes (spec.md §5 "Scheduling model").
type ThreadAffinity int

const (
	// AffinityOwnThread: one dedicated OS-backed goroutine (the default).
	AffinityOwnThread ThreadAffinity = iota
	// AffinityShared: cooperates on a small shared pool for lightweight
	// processors (execrunner.SharedPoolRunner) instead of getting its own
	// goroutine.
	AffinityShared
	// AffinityMainThread: must run on the process main thread (OS
	// GUI/GPU frameworks); multiplexed by the main-thread runner.
	AffinityMainThread
)
