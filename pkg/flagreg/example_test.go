package flagreg_test

import (
	"fmt"

	"github.com/ohir/uimodel/pkg/flagreg"
	"github.com/ohir/uimodel/pkg/uimodel"
)

const (
	optWifi = iota
	optBluetooth
	optAirplane
)

// Example shows a register with a reconciliation hook: airplane mode forces
// the radios off, and every committed transition announces its delta once.
func Example() {
	reg := flagreg.New(func(old flagreg.State, next *flagreg.State) bool {
		if next.Has(optAirplane) {
			next.Bits &^= 1<<optWifi | 1<<optBluetooth
		}
		return true
	})
	reg.OnCommit(func(changed uint64) {
		fmt.Printf("changed %#b\n", changed)
	})

	reg.Set(optWifi)
	reg.Set(optBluetooth)
	reg.Set(optAirplane)
	fmt.Println("wifi:", reg.Has(optWifi))

	// Output:
	// changed 0b1
	// changed 0b10
	// changed 0b111
	// wifi: false
}

// panel is a minimal element for the example.
type panel struct{}

func (p *panel) MarkNeedsBuild() {
	fmt.Println("rebuild panel")
}

// Example_model wires a register to a model: committed flags reach only the
// elements watching them.
func Example_model() {
	reg := flagreg.New(nil)
	model := uimodel.NewModel(reg)

	binder := uimodel.NewBinder(&panel{})
	binder.Watch(model, uimodel.Bit(optWifi))

	reg.Set(optWifi)      // watched: panel rebuilds
	reg.Set(optBluetooth) // unwatched: nothing happens

	// Output:
	// rebuild panel
}
