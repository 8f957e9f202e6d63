package core

// ProcessorSnap and LinkSnap are point-in-time projections of an entity's
// component state, consumed by the status snapshot and JSON export
// surfaces (spec.md §4.7). Grounded on the teacher's core.Snap returned
// by xctn.Snap() in xact/xreg/xreg.go.
type ProcessorSnap struct {
	ID          ProcessorId
	TypeName    string
	DisplayName string
	State       ProcessorState
	Paused      bool
	ThreadID    string
}

type LinkSnap struct {
	ID           LinkId
	Source       PortRef
	Target       PortRef
	State        LinkState
	Capacity     int
	FillLevel    int
	StrongRefs   int
	WeakRefs     int
	MessageKind  string
}
