package cerr_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tatolab/streamrt/cmn/cerr"
)

func TestNewAndIs(t *testing.T) {
	err := cerr.New(cerr.KindInvalidTopology, "no such processor %q", "p-1")
	if !cerr.Is(err, cerr.KindInvalidTopology) {
		t.Fatalf("expected Is to match the error's own kind")
	}
	if cerr.Is(err, cerr.KindLifecycle) {
		t.Fatalf("expected Is to reject a different kind")
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := cerr.Wrap(cerr.KindLifecycle, cause, "setup failed for %s", "Emitter")
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
	if !cerr.Is(err, cerr.KindLifecycle) {
		t.Fatalf("expected the wrapped error to report KindLifecycle")
	}
}

func TestConvenienceConstructorsReportExpectedKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind cerr.Kind
	}{
		{cerr.Cycle("a->b"), cerr.KindInvalidTopology},
		{cerr.PortTypeMismatch("out", "in"), cerr.KindInvalidTopology},
		{cerr.InputAlreadyBound("in"), cerr.KindInvalidTopology},
		{cerr.UnknownPort("p-1", "out"), cerr.KindInvalidTopology},
		{cerr.UnknownProcessorType("Frobnicator"), cerr.KindInvalidTopology},
		{cerr.InvalidConfig("Emitter", errors.New("bad json")), cerr.KindInvalidConfig},
		{cerr.LossyConfigRoundTrip("Emitter"), cerr.KindInvalidConfig},
		{cerr.SetupFailed("Emitter", errors.New("oops")), cerr.KindLifecycle},
		{cerr.TeardownDeadlineExceeded("Emitter"), cerr.KindLifecycle},
	}
	for _, tc := range cases {
		if !cerr.Is(tc.err, tc.kind) {
			t.Errorf("expected %v to have kind %s", tc.err, tc.kind)
		}
	}
}

func TestErrorStringIncludesCauseWhenPresent(t *testing.T) {
	cause := errors.New("disk full")
	err := cerr.Wrap(cerr.KindIO, cause, "flush failed")
	msg := err.Error()
	if !strings.Contains(msg, "disk full") {
		t.Fatalf("expected the error string to include the cause, got %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the wrapped error to still satisfy errors.Is against its cause")
	}
}
