package engine

import (
	"fmt"

	"github.com/talgya/fieldsim/internal/entropy"
	"github.com/talgya/fieldsim/internal/vec"
)

// Probe is a resource-carrying particle that descends the field gradient.
// Probes are the substrate the competitive economy feeds on: entities earn
// intake from the probes inside their capture radius, and persistent probe
// clusters become basins.
type Probe struct {
	Pos   vec.V2   `json:"pos"`
	Prev  vec.V2   `json:"prev"`
	Vel   vec.V2   `json:"vel"`
	Mass  float64  `json:"mass"`
	Speed float64  `json:"speed"`
	Age   uint64   `json:"age"`
	Trail []vec.V2 `json:"trail,omitempty"`
}

// seedProbes fills the pool with deterministically scattered probes.
func seedProbes(seed int64, n int, half vec.V2) []*Probe {
	probes := make([]*Probe, 0, n)
	for i := 0; i < n; i++ {
		p := &Probe{
			Pos: vec.V2{
				X: entropy.Range(seed, 0, fmt.Sprintf("probe:%d:x", i), -half.X*0.9, half.X*0.9),
				Y: entropy.Range(seed, 0, fmt.Sprintf("probe:%d:y", i), -half.Y*0.9, half.Y*0.9),
			},
			Mass: entropy.Range(seed, 0, fmt.Sprintf("probe:%d:m", i), 0.8, 1.2),
		}
		p.Prev = p.Pos
		probes = append(probes, p)
	}
	return probes
}

// stepProbes advances every probe one explicit-Euler step along
// −∇energy − α·∇density, damped and scaled by inverse mass. Out-of-bounds
// probes respawn near a deterministically chosen living entity — unless the
// population has reached the lattice cap, in which case they are deleted so
// the substrate drains into the lattice instead of churning.
func (w *World) stepProbes(dt float64) {
	bx := w.Cfg.HalfExtent.X + w.Cfg.Overflow
	by := w.Cfg.HalfExtent.Y + w.Cfg.Overflow

	kept := w.Probes[:0]
	for i, p := range w.Probes {
		grad := w.Field.GradEnergy(p.Pos, w.FieldTime).
			Add(w.Field.GradDensity(p.Pos).Scale(densityMix))
		acc := grad.Scale(-probeGain / p.Mass)

		p.Vel = p.Vel.Add(acc.Scale(dt)).Scale(probeDamp)
		p.Prev = p.Pos
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Speed = p.Vel.Len()
		p.Age++

		p.Trail = append(p.Trail, p.Pos)
		if len(p.Trail) > trailCap {
			p.Trail = p.Trail[len(p.Trail)-trailCap:]
		}

		if p.Pos.X < -bx || p.Pos.X > bx || p.Pos.Y < -by || p.Pos.Y > by {
			if len(w.Dynamics) >= w.Cfg.MaxEntities {
				continue // drained into the lattice
			}
			w.respawnProbe(p, i)
		}
		kept = append(kept, p)
	}
	w.Probes = kept
}

// respawnProbe places a probe near a deterministically chosen living dynamic
// entity, or at the origin when none exist.
func (w *World) respawnProbe(p *Probe, idx int) {
	center := vec.V2{}
	if len(w.Dynamics) > 0 {
		pick := entropy.Index(w.Cfg.Seed, w.Tick, fmt.Sprintf("respawn:%d:pick", idx), len(w.Dynamics))
		center = w.Dynamics[pick].Pos
	}
	ang := entropy.Angle(w.Cfg.Seed, w.Tick, fmt.Sprintf("respawn:%d:ang", idx))
	rad := entropy.Range(w.Cfg.Seed, w.Tick, fmt.Sprintf("respawn:%d:rad", idx), 0, probeRespawnR)
	p.Pos = center.Add(vec.FromAngle(ang).Scale(rad))
	p.Prev = p.Pos
	p.Vel = vec.V2{}
	p.Speed = 0
	p.Age = 0
	p.Trail = p.Trail[:0]
}
