package component_test

import (
	"testing"

	"github.com/tatolab/streamrt/component"
)

func TestStoreGetSetDelete(t *testing.T) {
	s := component.NewStore()

	if _, ok := s.Get(component.KindState); ok {
		t.Fatalf("expected Get on an empty store to report false")
	}

	s.Set(component.KindState, 42)
	v, ok := s.Get(component.KindState)
	if !ok || v.(int) != 42 {
		t.Fatalf("expected Get to return the value just Set, got %v ok=%v", v, ok)
	}
	if !s.Has(component.KindState) {
		t.Fatalf("expected Has to report true for a set kind")
	}

	s.Delete(component.KindState)
	if s.Has(component.KindState) {
		t.Fatalf("expected Has to report false after Delete")
	}
}

func TestStoreKindsReflectsCurrentContents(t *testing.T) {
	s := component.NewStore()
	s.Set(component.KindInstance, "a")
	s.Set(component.KindWiring, "b")

	kinds := s.Kinds()
	if len(kinds) != 2 {
		t.Fatalf("expected 2 kinds, got %v", kinds)
	}

	s.Delete(component.KindInstance)
	kinds = s.Kinds()
	if len(kinds) != 1 || kinds[0] != component.KindWiring {
		t.Fatalf("expected only KindWiring to remain, got %v", kinds)
	}
}

func TestStoreOverwritesExistingKind(t *testing.T) {
	s := component.NewStore()
	s.Set(component.KindMetrics, 1)
	s.Set(component.KindMetrics, 2)
	v, ok := s.Get(component.KindMetrics)
	if !ok || v.(int) != 2 {
		t.Fatalf("expected the second Set to overwrite the first, got %v ok=%v", v, ok)
	}
}
