package uimodel

import "github.com/ohir/uimodel/pkg/errors"

// linkPhase is the binding state of one element.
type linkPhase uint8

const (
	linkUnbound linkPhase = iota
	linkSingle
	linkMulti
)

// binding is one live (notifier, mask) registration.
type binding struct {
	notifier *Notifier
	mask     Mask
}

// LinkState tracks the registrations of exactly one element. The zero
// value is ready to use. Every call must pass the element the LinkState
// serves; Binder does this for application code.
//
// The common case of watching a single notifier is kept inline with no
// allocation. The first bind against a second notifier promotes the record
// to a slice of bindings, and it stays in that form until UnbindAll, even
// if later renders watch only one notifier again. At most one mask is
// active per distinct notifier.
//
// LinkState is not safe for concurrent use. It belongs to the host's
// render thread, like the element it serves.
type LinkState struct {
	single binding
	multi  []binding
	phase  linkPhase
}

// Bind ensures the element is registered with n under mask m, adjusting
// the previous registration if the pair changed since the last render:
//
//   - same notifier, same mask: nothing to do
//   - same notifier, new mask: the old pair is unregistered and the new
//     one registered (a rewatch)
//   - new notifier: an additional registration, preserving existing ones
//
// Binding the same notifier twice within one render with different masks
// therefore leaves the last mask registered. A nil notifier is a protocol
// violation and binds nothing.
func (l *LinkState) Bind(e Element, n *Notifier, m Mask) {
	if n == nil {
		violate(&errors.Violation{
			Op:      "uimodel.LinkState.Bind",
			Kind:    errors.KindProtocol,
			Detail:  "nil notifier",
			Element: typeName(e),
			Mask:    uint64(m),
		})
		return
	}
	switch l.phase {
	case linkUnbound:
		n.Register(e, m)
		l.single = binding{notifier: n, mask: m}
		l.phase = linkSingle

	case linkSingle:
		if l.single.notifier == n {
			if l.single.mask == m {
				return
			}
			l.rewatch(e, &l.single, m)
			return
		}
		n.Register(e, m)
		l.multi = []binding{l.single, {notifier: n, mask: m}}
		l.single = binding{}
		l.phase = linkMulti

	case linkMulti:
		for i := range l.multi {
			if l.multi[i].notifier == n {
				if l.multi[i].mask == m {
					return
				}
				l.rewatch(e, &l.multi[i], m)
				return
			}
		}
		n.Register(e, m)
		l.multi = append(l.multi, binding{notifier: n, mask: m})
	}
}

// rewatch swaps the registered mask of an existing binding.
func (l *LinkState) rewatch(e Element, b *binding, m Mask) {
	b.notifier.Unregister(e, b.mask)
	b.notifier.Register(e, m)
	b.mask = m
}

// UnbindAll removes every registration and returns the record to the
// unbound state. Safe on a never-bound LinkState. Registrations against a
// notifier that was disposed in the meantime unwind silently.
func (l *LinkState) UnbindAll(e Element) {
	switch l.phase {
	case linkUnbound:
		return
	case linkSingle:
		l.single.notifier.Unregister(e, l.single.mask)
		l.single = binding{}
	case linkMulti:
		for _, b := range l.multi {
			b.notifier.Unregister(e, b.mask)
		}
		l.multi = nil
	}
	l.phase = linkUnbound
}

// Bound reports whether any registration is live.
func (l *LinkState) Bound() bool {
	return l.phase != linkUnbound
}

// Watching returns the mask registered with n, if any.
func (l *LinkState) Watching(n *Notifier) (Mask, bool) {
	switch l.phase {
	case linkSingle:
		if l.single.notifier == n {
			return l.single.mask, true
		}
	case linkMulti:
		for _, b := range l.multi {
			if b.notifier == n {
				return b.mask, true
			}
		}
	}
	return 0, false
}
