package streamrt

import (
	"os"
	"os/signal"
	"syscall"
)

// WaitForSignal blocks until the process receives SIGINT or SIGTERM
// (spec.md §6 "wait_for_signal() — blocks until process is asked to
// stop (OS interrupt)"). It does not itself call Stop(); callers
// typically follow it with rt.Stop().
func WaitForSignal() os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)
	return <-ch
}
