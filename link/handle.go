package link

// Writer is a non-owning handle installed on an output port's wiring
// table. Pushing through a Writer whose Instance has been closed is a
// silent no-op that returns ErrDropped — never a fault (spec.md §4.1
// "Handle semantics").
type Writer struct {
	inst *Instance
}

func (w Writer) Push(v Value) error {
	if w.inst == nil || !w.inst.Alive() {
		return ErrDropped
	}
	err := w.inst.ring.Push(v)
	if err == nil {
		w.inst.fireNotify()
	}
	return err
}

// Release marks this handle as returned to the pool of weak refs; called
// by the compiler after it removes the handle from its port.OutputPort
// when a link is disconnected, or when wiring fails (spec.md §4.4 step 3:
// "update endpoint ports to drop the stored weak handles").
func (w Writer) Release() {
	if w.inst != nil {
		w.inst.release()
	}
}

// Reader is a non-owning handle installed on an input port's wiring
// table. Popping through a Reader whose Instance has been closed yields
// ErrEmpty forever (spec.md §8 "After disconnect(L) and commit, all
// writer/reader wrappers referencing L return false/empty forever").
type Reader struct {
	inst *Instance
}

func (r Reader) Pop() (Value, error) {
	if r.inst == nil || !r.inst.Alive() {
		return nil, ErrEmpty
	}
	return r.inst.ring.Pop()
}

func (r Reader) Release() {
	if r.inst != nil {
		r.inst.release()
	}
}
