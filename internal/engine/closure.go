package engine

import "github.com/talgya/fieldsim/internal/vec"

// The two permanent anchors. B and Ci sit symmetrically on the x axis and
// contribute to the density field forever; they never move, never compete,
// and never die.
var anchorSeeds = []struct {
	id       string
	pos      vec.V2
	strength float64
}{
	{"B", vec.V2{X: -0.5, Y: 0}, 1.0},
	{"Ci", vec.V2{X: 0.5, Y: 0}, 1.0},
}

// closureOp establishes and maintains the anchor set. Creation happens on the
// first application; afterwards the operator re-asserts the fixed anchor
// positions so no later operator can drift them.
type closureOp struct{}

func (closureOp) Name() string { return "closure" }

func (closureOp) Apply(w *World, dt float64, emit func(Event)) {
	for _, s := range anchorSeeds {
		if inv, ok := w.byID[s.id]; ok {
			inv.Pos = s.pos
			inv.Strength = s.strength
			continue
		}
		w.addAnchor(s.id, s.pos, s.strength)
	}
}

// oscillationOp drives the time-varying component of the energy landscape.
// Without it in the pipeline the field stays frozen at its initial shape.
type oscillationOp struct{}

func (oscillationOp) Name() string { return "oscillation" }

func (oscillationOp) Apply(w *World, dt float64, emit func(Event)) {
	w.FieldTime += dt
}

// detectionOp runs the particle-flow substrate and the basin detector: probes
// descend the field, dense probe clusters are matched against persistent
// basins, and stale basins decay away.
type detectionOp struct{}

func (detectionOp) Name() string { return "detection" }

func (detectionOp) Apply(w *World, dt float64, emit func(Event)) {
	w.stepProbes(dt)
	w.detectBasins(emit)
}
