package cos_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tatolab/streamrt/cmn/cos"
)

func TestGenUUIDProducesValidDistinctIDs(t *testing.T) {
	a := cos.GenUUID()
	b := cos.GenUUID()
	if a == b {
		t.Fatalf("expected two calls to GenUUID to produce distinct ids, got %q twice", a)
	}
	if !cos.IsValidUUID(a) {
		t.Fatalf("expected GenUUID's output %q to satisfy IsValidUUID", a)
	}
}

func TestIsAlphaNiceRejectsEdgeDashesAndEmpty(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"abc123", true},
		{"-abc", false},
		{"abc-", false},
		{"ab-c", true},
		{"ab_c", true},
		{"ab c", false},
	}
	for _, tc := range cases {
		if got := cos.IsAlphaNice(tc.s); got != tc.want {
			t.Errorf("IsAlphaNice(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestErrNotFound(t *testing.T) {
	err := cos.NewErrNotFound("processor %q", "p-1")
	if !cos.IsErrNotFound(err) {
		t.Fatalf("expected IsErrNotFound to recognize its own error type")
	}
	if cos.IsErrNotFound(errors.New("plain")) {
		t.Fatalf("expected IsErrNotFound to reject an unrelated error")
	}
}

// TestErrsAddDeduplicatesAndCaps exercises the compiler's partial-success
// accumulation helper (spec.md §4.4: "remaining operations in that phase
// continue, but the overall result reports partial success").
func TestErrsAddDeduplicatesAndCaps(t *testing.T) {
	var errs cos.Errs
	if errs.JoinErr() != nil {
		t.Fatalf("expected JoinErr on an empty Errs to be nil")
	}

	errs.Add(errors.New("boom"))
	errs.Add(errors.New("boom")) // duplicate, by message
	errs.Add(errors.New("bang"))

	if errs.Cnt() != 2 {
		t.Fatalf("expected duplicate messages to be deduplicated, got count %d", errs.Cnt())
	}

	joined := errs.JoinErr()
	if joined == nil {
		t.Fatalf("expected JoinErr to be non-nil once errors were added")
	}
	if !errors.Is(joined, joined) {
		t.Fatalf("expected the joined error to satisfy errors.Is against itself")
	}

	for i := 0; i < 20; i++ {
		errs.Add(fmt.Errorf("distinct error %d", i))
	}
	if errs.Cnt() != 16 {
		t.Fatalf("expected Errs to cap at 16 distinct errors, got %d", errs.Cnt())
	}
}
