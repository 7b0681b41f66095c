package uimodel

import (
	"sync"

	"github.com/ohir/uimodel/pkg/errors"
)

// Notifier maps watch masks to the elements registered under them and
// turns a changed-bits mask into MarkNeedsBuild calls on every element
// whose mask overlaps the change.
//
// One notifier serves one model instance and lives as long as the model.
// All methods are safe for concurrent use. Element hooks are invoked with
// no internal locks held.
type Notifier struct {
	mu       sync.Mutex
	watchers map[Mask]*watcherSet
	disposed bool
}

// watcherSet is the ordered set of elements registered under one mask.
// order preserves registration order for notification; member backs the
// duplicate guard and removal.
type watcherSet struct {
	order  []Element
	member map[Element]struct{}
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Register adds the (e, m) pair to the registry. Elements registered under
// the same mask are notified in registration order.
//
// Registering a pair twice is a duplicate violation and does not insert
// again. Registering on a disposed notifier is a disposed-use violation
// and inserts nothing.
func (n *Notifier) Register(e Element, m Mask) {
	if e == nil {
		violate(&errors.Violation{
			Op:     "uimodel.Notifier.Register",
			Kind:   errors.KindProtocol,
			Detail: "nil element",
			Mask:   uint64(m),
		})
		return
	}
	if v := n.register(e, m); v != nil {
		violate(v)
	}
}

func (n *Notifier) register(e Element, m Mask) *errors.Violation {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return &errors.Violation{
			Op:      "uimodel.Notifier.Register",
			Kind:    errors.KindDisposedUse,
			Detail:  "register on disposed notifier",
			Element: typeName(e),
			Mask:    uint64(m),
		}
	}
	ws := n.watchers[m]
	if ws == nil {
		ws = &watcherSet{member: make(map[Element]struct{})}
		if n.watchers == nil {
			n.watchers = make(map[Mask]*watcherSet)
		}
		n.watchers[m] = ws
	}
	if _, dup := ws.member[e]; dup {
		return &errors.Violation{
			Op:      "uimodel.Notifier.Register",
			Kind:    errors.KindDuplicate,
			Detail:  "pair already registered",
			Element: typeName(e),
			Mask:    uint64(m),
		}
	}
	ws.member[e] = struct{}{}
	ws.order = append(ws.order, e)
	return nil
}

// Unregister removes the (e, m) pair. Removing a pair that is not
// registered is a protocol violation: it means the binding layer above
// lost track of its registrations.
//
// After DisposeAll, unregister traffic from stale bindings is expected
// teardown and is ignored silently.
func (n *Notifier) Unregister(e Element, m Mask) {
	if v := n.unregister(e, m); v != nil {
		violate(v)
	}
}

func (n *Notifier) unregister(e Element, m Mask) *errors.Violation {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return nil
	}
	ws := n.watchers[m]
	if ws == nil {
		return n.absentPair(e, m)
	}
	if _, ok := ws.member[e]; !ok {
		return n.absentPair(e, m)
	}
	delete(ws.member, e)
	for i, o := range ws.order {
		if o == e {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	if len(ws.order) == 0 {
		delete(n.watchers, m)
	}
	return nil
}

func (n *Notifier) absentPair(e Element, m Mask) *errors.Violation {
	return &errors.Violation{
		Op:      "uimodel.Notifier.Unregister",
		Kind:    errors.KindProtocol,
		Detail:  "pair not registered",
		Element: typeName(e),
		Mask:    uint64(m),
	}
}

// Dispatch marks dirty every element whose watch mask overlaps changed.
// Within one mask set elements are marked in registration order; order
// across distinct masks is unspecified. An element registered under two
// overlapping masks is marked once per mask, which the host's dirty flag
// absorbs.
//
// The matched elements are snapshotted before any hook runs, so hooks may
// register, unregister, or dispatch again; such changes take effect for
// the next dispatch. Dispatch(0) does nothing. Dispatching on a disposed
// notifier is a disposed-use violation.
func (n *Notifier) Dispatch(changed Mask) {
	if changed == 0 {
		return
	}
	targets, v := n.collect(changed)
	if v != nil {
		violate(v)
		return
	}
	for _, e := range targets {
		e.MarkNeedsBuild()
	}
}

func (n *Notifier) collect(changed Mask) ([]Element, *errors.Violation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return nil, &errors.Violation{
			Op:     "uimodel.Notifier.Dispatch",
			Kind:   errors.KindDisposedUse,
			Detail: "dispatch on disposed notifier",
			Mask:   uint64(changed),
		}
	}
	var targets []Element
	for m, ws := range n.watchers {
		if !m.Overlaps(changed) {
			continue
		}
		targets = append(targets, ws.order...)
	}
	return targets, nil
}

// ObserverCount returns the total number of (element, mask) registrations.
// Diagnostic only.
func (n *Notifier) ObserverCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, ws := range n.watchers {
		total += len(ws.order)
	}
	return total
}

// DisposeAll tears the registry down: every registration is dropped and
// the notifier refuses further registers and dispatches. Elements are not
// notified or individually unregistered; previously bound elements must
// rebind against a fresh notifier (see Model.Reattach) or stay inert.
//
// DisposeAll is idempotent.
func (n *Notifier) DisposeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.watchers = nil
	n.disposed = true
}

// Disposed reports whether DisposeAll has run.
func (n *Notifier) Disposed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.disposed
}
