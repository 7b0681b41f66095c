package uitree

import (
	"testing"

	"github.com/ohir/uimodel/pkg/errors"
	"github.com/ohir/uimodel/pkg/flagreg"
	"github.com/ohir/uimodel/pkg/uimodel"
)

// testView counts renders and runs an optional hook.
type testView struct {
	renders  int
	onRender func(*Context)
}

func (v *testView) Render(ctx *Context) {
	v.renders++
	if v.onRender != nil {
		v.onRender(ctx)
	}
}

// testPanicHandler captures recovered render panics.
type testPanicHandler struct {
	errors.LogHandler
	panics []*errors.PanicError
}

func (h *testPanicHandler) HandlePanic(p *errors.PanicError) {
	h.panics = append(h.panics, p)
}

func TestMountRendersOnce(t *testing.T) {
	owner := NewBuildOwner()
	v := &testView{}

	elem := owner.Mount(v, nil)

	if v.renders != 1 {
		t.Errorf("renders = %d, want 1 after mount", v.renders)
	}
	if !elem.Mounted() {
		t.Error("Mounted = false after mount")
	}
	if owner.NeedsWork() {
		t.Error("NeedsWork = true right after mount")
	}
}

func TestMarkNeedsBuildDedupe(t *testing.T) {
	owner := NewBuildOwner()
	v := &testView{}
	elem := owner.Mount(v, nil)

	elem.MarkNeedsBuild()
	elem.MarkNeedsBuild()
	elem.MarkNeedsBuild()
	owner.FlushBuild()

	if v.renders != 2 {
		t.Errorf("renders = %d, want 2; repeated marks must coalesce", v.renders)
	}
}

func TestFlushBuildDepthOrder(t *testing.T) {
	owner := NewBuildOwner()
	var order []string
	parentView := &testView{onRender: func(*Context) { order = append(order, "parent") }}
	childView := &testView{onRender: func(*Context) { order = append(order, "child") }}

	parent := owner.Mount(parentView, nil)
	child := owner.Mount(childView, parent)
	order = nil

	// Mark shallow-last; the flush must still render parents first.
	child.MarkNeedsBuild()
	parent.MarkNeedsBuild()
	owner.FlushBuild()

	if len(order) != 2 || order[0] != "parent" || order[1] != "child" {
		t.Errorf("render order = %v, want [parent child]", order)
	}
}

func TestFlushBuildLoopsUntilClean(t *testing.T) {
	owner := NewBuildOwner()
	late := &testView{}
	var lateElem *Element
	trigger := &testView{}
	trigger.onRender = func(*Context) {
		if trigger.renders == 2 && lateElem != nil {
			lateElem.MarkNeedsBuild()
		}
	}

	triggerElem := owner.Mount(trigger, nil)
	lateElem = owner.Mount(late, nil)

	triggerElem.MarkNeedsBuild()
	owner.FlushBuild()

	if late.renders != 2 {
		t.Errorf("late renders = %d, want 2; flush must drain work scheduled mid-pass", late.renders)
	}
	if owner.NeedsWork() {
		t.Error("NeedsWork = true after flush")
	}
}

func TestUnmountSkipsRender(t *testing.T) {
	owner := NewBuildOwner()
	v := &testView{}
	elem := owner.Mount(v, nil)

	elem.MarkNeedsBuild()
	elem.Unmount()
	owner.FlushBuild()

	if v.renders != 1 {
		t.Errorf("renders = %d, want 1; unmounted elements must not render", v.renders)
	}
}

func TestUnmountReleasesBindings(t *testing.T) {
	owner := NewBuildOwner()
	model := uimodel.NewModel(nil)
	v := &testView{onRender: func(ctx *Context) {
		ctx.Watch(model, uimodel.Bit(0))
	}}

	elem := owner.Mount(v, nil)
	if got := model.ObserverCount(); got != 1 {
		t.Fatalf("ObserverCount = %d, want 1 after mount", got)
	}

	elem.Unmount()
	if got := model.ObserverCount(); got != 0 {
		t.Errorf("ObserverCount = %d, want 0 after unmount", got)
	}

	model.Notify(uimodel.Bit(0))
	owner.FlushBuild()
	if v.renders != 1 {
		t.Errorf("renders = %d, want 1; unmounted views must stay quiet", v.renders)
	}
}

func TestOnNeedsFrame(t *testing.T) {
	owner := NewBuildOwner()
	v := &testView{}
	elem := owner.Mount(v, nil)

	var frames int
	owner.OnNeedsFrame = func() { frames++ }

	elem.MarkNeedsBuild()
	elem.MarkNeedsBuild() // coalesced: no second signal
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}

	owner.FlushBuild()
	elem.MarkNeedsBuild()
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestRenderPanicReported(t *testing.T) {
	h := &testPanicHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	owner := NewBuildOwner()
	bad := &testView{onRender: func(*Context) { panic("render exploded") }}
	good := &testView{}

	badElem := owner.Mount(bad, nil)
	goodElem := owner.Mount(good, nil)

	if len(h.panics) != 1 {
		t.Fatalf("panics = %d, want 1 from mount render", len(h.panics))
	}

	badElem.MarkNeedsBuild()
	goodElem.MarkNeedsBuild()
	owner.FlushBuild()

	if len(h.panics) != 2 {
		t.Errorf("panics = %d, want 2", len(h.panics))
	}
	if h.panics[1].Value != "render exploded" {
		t.Errorf("panic value = %v, want %q", h.panics[1].Value, "render exploded")
	}
	if good.renders != 2 {
		t.Errorf("good renders = %d, want 2; a panicking sibling must not block the flush", good.renders)
	}
}

func TestRenderPanicDropsSelfMark(t *testing.T) {
	h := &testPanicHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	owner := NewBuildOwner()
	v := &testView{}
	v.onRender = func(ctx *Context) {
		ctx.Element().MarkNeedsBuild()
		panic("mid-render")
	}

	owner.Mount(v, nil)
	owner.FlushBuild()

	if v.renders != 1 {
		t.Errorf("renders = %d, want 1; a panicking render must not reschedule itself", v.renders)
	}
	if len(h.panics) != 1 {
		t.Errorf("panics = %d, want 1", len(h.panics))
	}
	if owner.NeedsWork() {
		t.Error("NeedsWork = true after flush")
	}
}

func TestWatchedFlagRerendersWatcherOnly(t *testing.T) {
	owner := NewBuildOwner()
	reg := flagreg.New(nil)
	model := uimodel.NewModel(reg)

	const (
		flagLeft = iota
		flagRight
	)

	left := &testView{onRender: func(ctx *Context) {
		ctx.Watch(model, uimodel.Bit(flagLeft))
	}}
	right := &testView{onRender: func(ctx *Context) {
		ctx.Watch(model, uimodel.Bit(flagRight))
	}}
	both := &testView{onRender: func(ctx *Context) {
		ctx.Watch(model, uimodel.Bit(flagLeft)|uimodel.Bit(flagRight))
	}}

	owner.Mount(left, nil)
	owner.Mount(right, nil)
	owner.Mount(both, nil)

	reg.Set(flagLeft)
	owner.FlushBuild()

	if left.renders != 2 {
		t.Errorf("left renders = %d, want 2", left.renders)
	}
	if right.renders != 1 {
		t.Errorf("right renders = %d, want 1", right.renders)
	}
	if both.renders != 2 {
		t.Errorf("both renders = %d, want 2", both.renders)
	}
}

func TestRewatchAcrossRenders(t *testing.T) {
	owner := NewBuildOwner()
	model := uimodel.NewModel(nil)

	// The view's interest moves from flag 0 to flag 1 once flag 0 fires.
	sawZero := false
	v := &testView{}
	v.onRender = func(ctx *Context) {
		if sawZero {
			ctx.Watch(model, uimodel.Bit(1))
		} else {
			ctx.Watch(model, uimodel.Bit(0))
		}
	}
	owner.Mount(v, nil)

	sawZero = true
	model.Notify(uimodel.Bit(0))
	owner.FlushBuild()
	if v.renders != 2 {
		t.Fatalf("renders = %d, want 2", v.renders)
	}

	// The old interest is gone, the new one live.
	model.Notify(uimodel.Bit(0))
	owner.FlushBuild()
	if v.renders != 2 {
		t.Errorf("renders = %d, want 2; flag 0 is no longer watched", v.renders)
	}

	model.Notify(uimodel.Bit(1))
	owner.FlushBuild()
	if v.renders != 3 {
		t.Errorf("renders = %d, want 3; flag 1 is watched now", v.renders)
	}
}
