package main

import (
	"time"

	"github.com/jamiealquiza/tachymeter"

	"github.com/ohir/uimodel/pkg/flagreg"
	"github.com/ohir/uimodel/pkg/uimodel"
	"github.com/ohir/uimodel/pkg/uitree"
)

// population is one mounted benchmark world: a flag register feeding a
// model that a tree of elements watches.
type population struct {
	reg      *flagreg.Register
	model    *uimodel.Model
	owner    *uitree.BuildOwner
	elems    []*uitree.Element
	rebuilds int
	round    int
}

func newPopulation() *population {
	p := &population{
		reg:   flagreg.New(nil),
		owner: uitree.NewBuildOwner(),
	}
	p.model = uimodel.NewModel(p.reg)
	return p
}

// mountStatic mounts elements whose watched mask is fixed per index.
func (p *population) mountStatic(elements int, maskOf func(i int) uimodel.Mask) {
	for i := 0; i < elements; i++ {
		mask := maskOf(i)
		view := uitree.ViewFunc(func(ctx *uitree.Context) {
			p.rebuilds++
			ctx.Watch(p.model, mask)
		})
		p.elems = append(p.elems, p.owner.Mount(view, nil))
	}
}

func (p *population) close() {
	for _, e := range p.elems {
		e.Unmount()
	}
	p.model.Close()
}

type result struct {
	shape    string
	elements int
	rebuilds int
	metrics  *tachymeter.Metrics
}

// runShape mounts one population, warms it up, then samples rounds of
// drive-and-flush. Rebuilds are counted over the measured rounds only.
func runShape(sh shape, elements, flags, rounds, warmup int) result {
	p := newPopulation()
	drive := sh.setup(p, elements, flags)

	for i := 0; i < warmup; i++ {
		drive()
		p.owner.FlushBuild()
	}

	p.rebuilds = 0
	tach := tachymeter.New(&tachymeter.Config{Size: rounds})
	for i := 0; i < rounds; i++ {
		start := time.Now()
		drive()
		p.owner.FlushBuild()
		tach.AddTime(time.Since(start))
	}

	rebuilds := p.rebuilds
	p.close()

	return result{
		shape:    sh.name,
		elements: elements,
		rebuilds: rebuilds,
		metrics:  tach.Calc(),
	}
}
