package replay

import "github.com/zzstoatzz/percolation/internal/trace"

// Reveal derives, for any step, the bonds already applied when that step is
// displayed. Frame 0 shows none; frame t shows the first t. Bonds are
// immutable so the result is a shared prefix slice, monotonic in t.
type Reveal struct {
	tr *trace.Trace
}

func NewReveal(tr *trace.Trace) *Reveal {
	return &Reveal{tr: tr}
}

// Upto returns bonds[0:step]. Callers must treat the slice as read-only.
func (r *Reveal) Upto(step int) ([]trace.Bond, error) {
	if step < 0 || step >= r.tr.Frames() {
		return nil, &trace.RangeError{Index: step, Len: r.tr.Frames()}
	}
	return r.tr.Bonds()[:step], nil
}
