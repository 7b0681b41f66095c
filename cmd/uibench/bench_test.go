package main

import (
	"testing"

	"github.com/ohir/uimodel/pkg/uimodel"
)

func TestRunShape_FanOut(t *testing.T) {
	tests := []struct {
		shape    string
		elements int
		flags    int
		rounds   int
		warmup   int
		rebuilds int
	}{
		// Every round rebuilds the whole population.
		{"steady", 10, 4, 6, 2, 60},
		// 8 elements over 4 stripes: 2 rebuilds per round.
		{"striped", 8, 4, 4, 2, 8},
		// Element 0 watches everything, the stripes hold 2+3+2+2 elements.
		{"tiered", 10, 4, 4, 3, 13},
		// Rewatching keeps every element on the flipped flag each round,
		// even across an odd-length warmup.
		{"churn", 6, 4, 5, 3, 30},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			sh, ok := shapeByName(tt.shape)
			if !ok {
				t.Fatalf("shape %q not registered", tt.shape)
			}
			res := runShape(sh, tt.elements, tt.flags, tt.rounds, tt.warmup)
			if res.rebuilds != tt.rebuilds {
				t.Errorf("rebuilds = %d, want %d", res.rebuilds, tt.rebuilds)
			}
			if res.shape != tt.shape {
				t.Errorf("result shape = %q, want %q", res.shape, tt.shape)
			}
			if res.elements != tt.elements {
				t.Errorf("result elements = %d, want %d", res.elements, tt.elements)
			}
			if res.metrics == nil {
				t.Fatal("expected timing metrics")
			}
		})
	}
}

func TestShapeByName_Unknown(t *testing.T) {
	if _, ok := shapeByName("zigzag"); ok {
		t.Error("expected unknown shape to be rejected")
	}
}

func TestAllMask(t *testing.T) {
	tests := []struct {
		flags int
		want  uimodel.Mask
	}{
		{1, 0b1},
		{2, 0b11},
		{16, 0xFFFF},
		{64, ^uimodel.Mask(0)},
	}
	for _, tt := range tests {
		if got := allMask(tt.flags); got != tt.want {
			t.Errorf("allMask(%d) = %#x, want %#x", tt.flags, got, tt.want)
		}
	}
}

func TestPopulationObservers(t *testing.T) {
	p := newPopulation()
	setupSteady(p, 5, 4)

	if got := p.model.ObserverCount(); got != 5 {
		t.Errorf("ObserverCount = %d, want 5", got)
	}

	p.close()
	if got := p.model.ObserverCount(); got != 0 {
		t.Errorf("ObserverCount after close = %d, want 0", got)
	}
}
