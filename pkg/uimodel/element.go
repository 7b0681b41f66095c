package uimodel

import "fmt"

// Element is the handle the engine keeps for a participating UI component.
// The host framework supplies it; this package only ever invalidates it.
//
// Elements are identified by reference: the same value must be passed to
// every registration call for one component, and it must be usable as a
// map key. Pointers to the host's element type satisfy both naturally.
type Element interface {
	// MarkNeedsBuild schedules the element for rebuild. It must tolerate
	// being called on an already-dirty element and being called again
	// from within a rebuild.
	MarkNeedsBuild()
}

// typeName names an element for violation reports.
func typeName(e Element) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", e)
}
