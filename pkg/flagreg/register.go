// Package flagreg provides a fixed-capacity flag register with change
// tracking and a pluggable reconciliation hook.
//
// A Register holds up to 64 boolean flags, each of which can also be
// disabled. Mutations go through a transition step: the proposed state is
// offered to the register's Fixer, which may adjust related flags or veto
// the change, and a commit announces the changed bits to every listener
// exactly once. The changed-bits announcement makes a Register a drop-in
// change source for a uimodel.Model.
package flagreg

import (
	"fmt"

	"github.com/ohir/uimodel/pkg/errors"
)

// Capacity is the number of flags a register holds.
const Capacity = 64

// State is a full snapshot of a register: current values and which flags
// are disabled.
type State struct {
	Bits     uint64
	Disabled uint64
}

// Has reports whether flag i is set. Indexes outside capacity read as unset.
func (s State) Has(i int) bool {
	if i < 0 || i >= Capacity {
		return false
	}
	return s.Bits&(1<<uint(i)) != 0
}

// Enabled reports whether flag i accepts value changes.
func (s State) Enabled(i int) bool {
	if i < 0 || i >= Capacity {
		return false
	}
	return s.Disabled&(1<<uint(i)) == 0
}

// Fixer inspects a proposed transition before it commits. old is the
// committed state and next the proposal; the fixer may adjust next to keep
// related flags consistent (radio groups, dependent options). Returning
// false abandons the transition.
type Fixer func(old State, next *State) bool

// Register is a flag vector with commit semantics. Each mutator produces
// at most one committed transition; degenerate mutations (no effective
// change, or a value change on a disabled flag) commit nothing.
//
// Register is not safe for concurrent use. It belongs to the host's event
// thread, like the UI state it backs.
type Register struct {
	state          State
	fixer          Fixer
	changed        uint64
	serial         uint64
	listeners      map[int]func(uint64)
	nextListenerID int
}

// New creates an empty register. fixer may be nil.
func New(fixer Fixer) *Register {
	return &Register{
		fixer:     fixer,
		listeners: make(map[int]func(uint64)),
	}
}

// Set sets flag i. Ignored while i is disabled.
func (r *Register) Set(i int) {
	if !r.check("flagreg.Register.Set", i) {
		return
	}
	bit := uint64(1) << uint(i)
	if r.state.Disabled&bit != 0 {
		return
	}
	next := r.state
	next.Bits |= bit
	r.transition(next)
}

// Clear clears flag i. Ignored while i is disabled.
func (r *Register) Clear(i int) {
	if !r.check("flagreg.Register.Clear", i) {
		return
	}
	bit := uint64(1) << uint(i)
	if r.state.Disabled&bit != 0 {
		return
	}
	next := r.state
	next.Bits &^= bit
	r.transition(next)
}

// SetTo sets or clears flag i.
func (r *Register) SetTo(i int, on bool) {
	if on {
		r.Set(i)
	} else {
		r.Clear(i)
	}
}

// Toggle flips flag i. Ignored while i is disabled.
func (r *Register) Toggle(i int) {
	if !r.check("flagreg.Register.Toggle", i) {
		return
	}
	bit := uint64(1) << uint(i)
	if r.state.Disabled&bit != 0 {
		return
	}
	next := r.state
	next.Bits ^= bit
	r.transition(next)
}

// Enable lets flag i accept value changes again.
func (r *Register) Enable(i int) {
	if !r.check("flagreg.Register.Enable", i) {
		return
	}
	next := r.state
	next.Disabled &^= uint64(1) << uint(i)
	r.transition(next)
}

// Disable freezes flag i: Set, Clear and Toggle ignore it until Enable.
// The current value stays visible.
func (r *Register) Disable(i int) {
	if !r.check("flagreg.Register.Disable", i) {
		return
	}
	next := r.state
	next.Disabled |= uint64(1) << uint(i)
	r.transition(next)
}

// Has reports whether flag i is set.
func (r *Register) Has(i int) bool {
	return r.state.Has(i)
}

// Enabled reports whether flag i accepts value changes.
func (r *Register) Enabled(i int) bool {
	return r.state.Enabled(i)
}

// Snapshot returns the committed state.
func (r *Register) Snapshot() State {
	return r.state
}

// Changed returns the bits touched by the most recent commit, covering
// both value and enable edges.
func (r *Register) Changed() uint64 {
	return r.changed
}

// Serial returns the number of committed transitions.
func (r *Register) Serial() uint64 {
	return r.serial
}

// OnCommit registers fn to receive the changed bits of every committed
// transition. The returned cancel function detaches it.
func (r *Register) OnCommit(fn func(changed uint64)) (cancel func()) {
	id := r.nextListenerID
	r.nextListenerID++
	r.listeners[id] = fn
	return func() {
		delete(r.listeners, id)
	}
}

// transition runs the reconciliation hook and commits next if anything
// effectively changed, announcing the delta to listeners exactly once.
func (r *Register) transition(next State) {
	if next == r.state {
		return
	}
	if r.fixer != nil {
		if !r.fixer(r.state, &next) {
			return
		}
		if next == r.state {
			return
		}
	}
	old := r.state
	r.state = next
	r.changed = (old.Bits ^ next.Bits) | (old.Disabled ^ next.Disabled)
	r.serial++
	// Deliver this commit's delta even if a listener commits again mid-loop.
	changed := r.changed
	for _, fn := range r.listeners {
		fn(changed)
	}
}

// check validates a flag index. Out-of-range indexes are reported and the
// operation becomes a no-op in both debug and release builds.
func (r *Register) check(op string, i int) bool {
	if i >= 0 && i < Capacity {
		return true
	}
	errors.Report(&errors.Violation{
		Op:         op,
		Kind:       errors.KindIndexRange,
		Detail:     fmt.Sprintf("flag index %d outside capacity", i),
		StackTrace: errors.CaptureStack(),
	})
	return false
}
