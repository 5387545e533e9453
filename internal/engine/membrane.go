package engine

import "github.com/talgya/fieldsim/internal/vec"

// membraneOp is the terminal-regime operator. It stays dormant until the
// dynamic population reaches the lattice cap, then treats the lattice as a
// mass-spring network: neighbors pull toward a common rest distance,
// viscosity draws each entity toward its local neighbor-average position, and
// a radial surface-tension term pulls everything toward the population's mean
// radius from the centroid. Fully populated, the system sets into a cohesive
// gel instead of the sparse competitive scatter.
type membraneOp struct{}

func (membraneOp) Name() string { return "membrane" }

func (membraneOp) Apply(w *World, dt float64, emit func(Event)) {
	n := len(w.Dynamics)
	if n < w.Cfg.MaxEntities || n < 2 {
		return
	}

	centroid := vec.V2{}
	for _, inv := range w.Dynamics {
		centroid = centroid.Add(inv.Pos)
	}
	centroid = centroid.Scale(1 / float64(n))

	meanRadius := 0.0
	for _, inv := range w.Dynamics {
		meanRadius += inv.Pos.Dist(centroid)
	}
	meanRadius /= float64(n)

	// Accumulate into a buffer so the result is independent of entity order.
	accs := make([]vec.V2, n)
	for i, inv := range w.Dynamics {
		acc := vec.V2{}
		neighborMean := vec.V2{}
		neighbors := 0

		for j, other := range w.Dynamics {
			if i == j {
				continue
			}
			sep := other.Pos.Sub(inv.Pos)
			d := sep.Len()
			if d == 0 || d > membraneRange {
				continue
			}
			// Spring toward the rest distance.
			acc = acc.Add(sep.Norm().Scale(membraneSpring * (d - membraneRest)))
			neighborMean = neighborMean.Add(other.Pos)
			neighbors++
		}

		if neighbors > 0 {
			neighborMean = neighborMean.Scale(1 / float64(neighbors))
			acc = acc.Add(neighborMean.Sub(inv.Pos).Scale(membraneVisc))
		}

		radial := inv.Pos.Sub(centroid)
		r := radial.Len()
		if r > 0 {
			acc = acc.Add(radial.Norm().Scale(surfaceTension * (meanRadius - r)))
		}

		accs[i] = acc
	}

	for i, inv := range w.Dynamics {
		inv.Vel = inv.Vel.Add(accs[i].Scale(dt / inv.Mass))
	}
}
