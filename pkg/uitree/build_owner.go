package uitree

import (
	"slices"
	"sync"

	"github.com/ohir/uimodel/pkg/uimodel"
)

// BuildOwner tracks dirty elements and re-renders them in depth order.
type BuildOwner struct {
	dirty    []*Element
	dirtySet map[*Element]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when an element is scheduled for re-render,
	// signalling the platform loop that a flush is worth running. This
	// supports on-demand frame scheduling where the loop sleeps until
	// work arrives.
	OnNeedsFrame func()
}

// NewBuildOwner creates an empty build owner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// Mount adds a view to the tree under parent (nil for a root) and runs its
// first render synchronously, so its model bindings are live when Mount
// returns.
func (b *BuildOwner) Mount(v View, parent *Element) *Element {
	elem := &Element{
		view:    v,
		parent:  parent,
		owner:   b,
		mounted: true,
	}
	if parent != nil {
		elem.depth = parent.depth + 1
	}
	elem.binder = uimodel.NewBinder(elem)
	elem.dirty = true
	elem.rebuildIfNeeded()
	return elem
}

// ScheduleBuild queues an element for the next flush.
func (b *BuildOwner) ScheduleBuild(element *Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[*Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork reports whether a flush would do anything.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild re-renders all dirty elements in depth order, looping until
// renders stop scheduling more work. Unmounted elements are skipped.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b *Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			element.rebuildIfNeeded()
		}
	}
}
