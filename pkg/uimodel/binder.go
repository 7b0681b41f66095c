package uimodel

import "github.com/ohir/uimodel/pkg/errors"

// Binder connects one element to the models it watches. Hosts create a
// binder when the element mounts, route Watch calls to it during each
// render, and call Release when the element unmounts.
//
// Binder is the only registration surface application code should touch;
// it keeps the LinkState invariants so renders can re-declare interest
// freely. Like LinkState, a binder belongs to the host's render thread.
type Binder struct {
	elem Element
	link LinkState
}

// NewBinder returns a binder for e. A nil element is a protocol violation
// and yields an inert binder that ignores Watch.
func NewBinder(e Element) *Binder {
	if e == nil {
		violate(&errors.Violation{
			Op:     "uimodel.NewBinder",
			Kind:   errors.KindProtocol,
			Detail: "nil element",
		})
	}
	return &Binder{elem: e}
}

// Watch declares that the binder's element depends on the flags of mask in
// model m, registering or adjusting the underlying binding as needed.
// Called from the element's render; calling it again with the same
// arguments is free.
//
// Watch on a released binder or a nil model is a protocol violation and
// registers nothing. Watch on a closed model is a disposed-use violation.
func (b *Binder) Watch(m *Model, mask Mask) {
	if b.elem == nil {
		violate(&errors.Violation{
			Op:     "uimodel.Binder.Watch",
			Kind:   errors.KindProtocol,
			Detail: "watch on released binder",
			Mask:   uint64(mask),
		})
		return
	}
	if m == nil {
		violate(&errors.Violation{
			Op:      "uimodel.Binder.Watch",
			Kind:    errors.KindProtocol,
			Detail:  "nil model",
			Element: typeName(b.elem),
			Mask:    uint64(mask),
		})
		return
	}
	n := m.acquireNotifier()
	if n == nil {
		violate(&errors.Violation{
			Op:      "uimodel.Binder.Watch",
			Kind:    errors.KindDisposedUse,
			Detail:  "watch on closed model",
			Element: typeName(b.elem),
			Mask:    uint64(mask),
		})
		return
	}
	b.link.Bind(b.elem, n, mask)
}

// Release unbinds everything and detaches the element. Idempotent; part of
// the element's unmount path. A released binder cannot be rearmed, mount a
// fresh one instead.
func (b *Binder) Release() {
	if b.elem == nil {
		return
	}
	b.link.UnbindAll(b.elem)
	b.elem = nil
}

// Bound reports whether the binder holds any live registration.
func (b *Binder) Bound() bool {
	return b.link.Bound()
}
