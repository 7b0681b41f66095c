// Package modeltest provides test support for uimodel-driven code.
//
// # Quick Start
//
// Probe stands in for a host element, Install captures violations instead
// of letting them hit stderr, and Quiet runs a test under release
// semantics so violation paths no-op instead of panicking:
//
//	func TestPanelWatchesSelection(t *testing.T) {
//	    modeltest.Quiet(t)
//	    rec := modeltest.Install(t)
//
//	    model := uimodel.NewModel(nil)
//	    probe := modeltest.NewProbe("panel")
//	    binder := uimodel.NewBinder(probe)
//	    binder.Watch(model, uimodel.Bit(flagSelection))
//
//	    model.Notify(uimodel.Bit(flagSelection))
//	    if probe.Builds() != 1 {
//	        t.Errorf("builds = %d, want 1", probe.Builds())
//	    }
//	    if len(rec.Violations()) != 0 {
//	        t.Errorf("unexpected violations: %v", rec.Violations())
//	    }
//	}
package modeltest

import (
	"sync"
	"testing"

	"github.com/ohir/uimodel/pkg/errors"
	"github.com/ohir/uimodel/pkg/uimodel"
)

// Probe is a fake element that records invalidations. It satisfies
// uimodel.Element and is safe for concurrent use, so it can stand on the
// receiving end of dispatches from any goroutine.
type Probe struct {
	// OnBuild, when set, runs on every invalidation. Re-entrancy tests
	// hook registration calls in here.
	OnBuild func()

	name   string
	mu     sync.Mutex
	builds int
}

// NewProbe creates a probe. The name appears in %T-independent test
// output and may be empty.
func NewProbe(name string) *Probe {
	return &Probe{name: name}
}

// MarkNeedsBuild records one invalidation.
func (p *Probe) MarkNeedsBuild() {
	p.mu.Lock()
	p.builds++
	hook := p.OnBuild
	p.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Builds returns the number of invalidations recorded.
func (p *Probe) Builds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.builds
}

// Reset clears the invalidation count.
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.builds = 0
}

// Name returns the probe's name.
func (p *Probe) Name() string {
	return p.name
}

// Recorder is an errors.Handler that captures everything it receives.
type Recorder struct {
	mu         sync.Mutex
	violations []*errors.Violation
	panics     []*errors.PanicError
}

// HandleViolation stores v.
func (r *Recorder) HandleViolation(v *errors.Violation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.violations = append(r.violations, v)
}

// HandlePanic stores p.
func (r *Recorder) HandlePanic(p *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, p)
}

// Violations returns the captured violations in arrival order.
func (r *Recorder) Violations() []*errors.Violation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*errors.Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

// Panics returns the captured panics in arrival order.
func (r *Recorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*errors.PanicError, len(r.panics))
	copy(out, r.panics)
	return out
}

// Install registers a fresh Recorder as the global violation handler for
// the duration of the test and returns it.
func Install(t *testing.T) *Recorder {
	t.Helper()
	r := &Recorder{}
	errors.SetHandler(r)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return r
}

// Quiet switches the engine to release behavior (violations are reported,
// not fatal) for the duration of the test.
func Quiet(t *testing.T) {
	t.Helper()
	old := uimodel.DebugMode
	uimodel.SetDebugMode(false)
	t.Cleanup(func() { uimodel.SetDebugMode(old) })
}
