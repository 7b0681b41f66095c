// Package uitree is a minimal host tree for flag-driven views.
//
// It adapts the uimodel engine to a concrete render loop: views declare
// model dependencies while rendering, committed model changes mark the
// watching elements dirty, and FlushBuild re-renders exactly the dirty
// part of the tree. Hosts with their own element trees need none of this
// package; it exists for tools, tests and small terminal frontends.
package uitree

import (
	"github.com/ohir/uimodel/pkg/errors"
	"github.com/ohir/uimodel/pkg/uimodel"
)

// View produces output for one element. Render runs on the host thread;
// it calls ctx.Watch for every model dependency of the pass and must be
// safe to run whenever a watched flag changed.
type View interface {
	Render(ctx *Context)
}

// ViewFunc adapts a function to the View interface.
type ViewFunc func(ctx *Context)

func (f ViewFunc) Render(ctx *Context) { f(ctx) }

// Element is one mounted view: its dirty state, its position in the tree
// and its model bindings.
type Element struct {
	view    View
	parent  *Element
	depth   int
	owner   *BuildOwner
	binder  *uimodel.Binder
	dirty   bool
	mounted bool
}

// MarkNeedsBuild schedules the element for re-render. Safe to call on an
// already-dirty element; dispatch fan-out relies on that.
func (e *Element) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.owner != nil && e.mounted {
		e.owner.ScheduleBuild(e)
	}
}

// Depth returns the element's distance from the root.
func (e *Element) Depth() int {
	return e.depth
}

// Mounted reports whether the element is live in the tree.
func (e *Element) Mounted() bool {
	return e.mounted
}

// Unmount releases the element's model bindings and removes it from the
// render loop. Unmounted elements are skipped by FlushBuild.
func (e *Element) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.binder.Release()
}

// rebuildIfNeeded runs one render pass if the element is dirty and live.
func (e *Element) rebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.renderSafely(&Context{element: e})
}

// renderSafely keeps a panicking view from taking the flush loop down.
// A render that panics forfeits any self-mark it made during the pass.
func (e *Element) renderSafely(ctx *Context) {
	defer errors.RecoverWithCallback("uitree.Element.Render", func(any) {
		e.dirty = false
	})
	e.view.Render(ctx)
}

// Context is the per-render handle a view receives.
type Context struct {
	element *Element
}

// Element returns the element being rendered.
func (c *Context) Element() *Element {
	return c.element
}

// Watch declares that the rendering element depends on the flags of mask
// in model m. Renders re-declare their dependencies each pass; unchanged
// declarations are free.
func (c *Context) Watch(m *uimodel.Model, mask uimodel.Mask) {
	c.element.binder.Watch(m, mask)
}
