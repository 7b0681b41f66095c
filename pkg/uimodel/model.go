package uimodel

import (
	"sync"

	"github.com/ohir/uimodel/pkg/errors"
)

// ChangeSource is the contract a flag register fulfills to drive a model:
// it must deliver exactly one changed-bits value per committed transition.
// The returned cancel function detaches the listener.
//
// The value is opaque to the model beyond its bit pattern, so registers
// implement this without importing uimodel.
type ChangeSource interface {
	OnCommit(fn func(changed uint64)) (cancel func())
}

// Model is the facade an application holds: one notifier plus an optional
// subscription to the register that owns the actual flag state. There are
// no ambient model singletons; hand the model to the components that
// watch it.
//
// Model methods are safe for concurrent use.
type Model struct {
	mu     sync.Mutex
	notif  *Notifier
	cancel func()
	closed bool
}

// NewModel returns a model fed by src. A nil src is fine; the application
// then announces changes itself through Notify.
func NewModel(src ChangeSource) *Model {
	m := &Model{}
	if src != nil {
		m.cancel = src.OnCommit(func(changed uint64) {
			m.Notify(Mask(changed))
		})
	}
	return m
}

// acquireNotifier returns the live notifier, creating it on first use.
// It returns nil once the model is closed.
func (m *Model) acquireNotifier() *Notifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	if m.notif == nil {
		m.notif = NewNotifier()
	}
	return m.notif
}

// Notify dispatches one committed change mask to the watchers. Models with
// a change source receive this automatically per commit; applications
// without one call it directly. A model nothing has watched yet absorbs
// the call. Notify on a closed model is a disposed-use violation.
func (m *Model) Notify(changed Mask) {
	m.mu.Lock()
	n := m.notif
	closed := m.closed
	m.mu.Unlock()
	if closed {
		violate(&errors.Violation{
			Op:     "uimodel.Model.Notify",
			Kind:   errors.KindDisposedUse,
			Detail: "notify on closed model",
			Mask:   uint64(changed),
		})
		return
	}
	if n == nil {
		return
	}
	n.Dispatch(changed)
}

// ObserverCount returns the total registrations on the current notifier.
// Diagnostic only.
func (m *Model) ObserverCount() int {
	m.mu.Lock()
	n := m.notif
	m.mu.Unlock()
	if n == nil {
		return 0
	}
	return n.ObserverCount()
}

// Reattach replaces the notifier with a fresh one, disposing the old. This
// is the recovery path after a teardown that disposed the notifier out
// from under live bindings: previously bound elements stay inert until
// they remount and watch again. Reattach on a closed model is a
// disposed-use violation.
func (m *Model) Reattach() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		violate(&errors.Violation{
			Op:     "uimodel.Model.Reattach",
			Kind:   errors.KindDisposedUse,
			Detail: "reattach on closed model",
		})
		return
	}
	old := m.notif
	m.notif = NewNotifier()
	m.mu.Unlock()
	if old != nil {
		old.DisposeAll()
	}
}

// Close cancels the register subscription and disposes the notifier.
// Idempotent. A closed model rejects further watches and notifies.
func (m *Model) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	cancel := m.cancel
	m.cancel = nil
	old := m.notif
	m.notif = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if old != nil {
		old.DisposeAll()
	}
}
