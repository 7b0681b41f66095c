package main

import (
	"github.com/ohir/uimodel/pkg/uimodel"
	"github.com/ohir/uimodel/pkg/uitree"
)

// A shape decides which flags each element watches and which flag each
// round flips. Together those fix how many elements rebuild per commit.
type shape struct {
	name  string
	desc  string
	setup func(p *population, elements, flags int) func()
}

var shapes = []shape{
	{
		name:  "steady",
		desc:  "all elements watch flag 0; every round flips it",
		setup: setupSteady,
	},
	{
		name:  "striped",
		desc:  "element i watches flag i%flags; rounds flip the stripes in turn",
		setup: setupStriped,
	},
	{
		name:  "tiered",
		desc:  "every 10th element watches all flags, the rest one stripe",
		setup: setupTiered,
	},
	{
		name:  "churn",
		desc:  "elements swap the watched flag on every rebuild (flags 0 and 1)",
		setup: setupChurn,
	},
}

func shapeByName(name string) (shape, bool) {
	for _, sh := range shapes {
		if sh.name == name {
			return sh, true
		}
	}
	return shape{}, false
}

// allMask covers flag indices 0..flags-1. A uint64 shift by 64 yields
// zero, so flags = 64 wraps to the full mask.
func allMask(flags int) uimodel.Mask {
	return uimodel.Mask(1)<<uint(flags) - 1
}

func setupSteady(p *population, elements, flags int) func() {
	p.mountStatic(elements, func(int) uimodel.Mask { return uimodel.Bit(0) })
	return func() { p.reg.Toggle(0) }
}

func setupStriped(p *population, elements, flags int) func() {
	p.mountStatic(elements, func(i int) uimodel.Mask { return uimodel.Bit(i % flags) })
	return func() {
		p.reg.Toggle(p.round % flags)
		p.round++
	}
}

func setupTiered(p *population, elements, flags int) func() {
	wide := allMask(flags)
	p.mountStatic(elements, func(i int) uimodel.Mask {
		if i%10 == 0 {
			return wide
		}
		return uimodel.Bit(i % flags)
	})
	return func() {
		p.reg.Toggle(p.round % flags)
		p.round++
	}
}

// setupChurn rewatches every element on every rebuild. The drive keeps its
// own round counter so warmup never desyncs it from the elements.
func setupChurn(p *population, elements, flags int) func() {
	for i := 0; i < elements; i++ {
		n := 0
		view := uitree.ViewFunc(func(ctx *uitree.Context) {
			p.rebuilds++
			ctx.Watch(p.model, uimodel.Bit(n%2))
			n++
		})
		p.elems = append(p.elems, p.owner.Mount(view, nil))
	}
	return func() {
		p.reg.Toggle(p.round % 2)
		p.round++
	}
}
