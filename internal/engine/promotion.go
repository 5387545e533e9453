package engine

import (
	"fmt"

	"github.com/talgya/fieldsim/internal/entropy"
	"github.com/talgya/fieldsim/internal/vec"
)

// promotionOp births a dynamic entity at every basin that has proven both
// persistent and dense, provided the site is free: no entity already sits on
// the basin, the population is under the soft cluster ceiling and the hard
// lattice cap, the basin keeps distance from the anchors, and the local
// gradient has settled — promotion requires a near-equilibrium location, not
// an active flow.
type promotionOp struct{}

func (promotionOp) Name() string { return "promotion" }

func (promotionOp) Apply(w *World, dt float64, emit func(Event)) {
	for _, b := range w.Basins {
		if b.Promoted || b.Frames < promoteFrames || b.Count < promoteCount {
			continue
		}
		if len(w.Dynamics) >= w.Cfg.MaxEntities {
			return
		}
		if !w.siteFree(b.Pos) {
			continue
		}

		grad := w.Field.GradEnergy(b.Pos, w.FieldTime).
			Add(w.Field.GradDensity(b.Pos).Scale(densityMix))
		if grad.Len() >= settleThreshold {
			continue
		}

		w.promote(b, emit)
	}
}

// siteFree checks the occupancy, anchor-exclusion, and soft-ceiling guards
// around a candidate position.
func (w *World) siteFree(pos vec.V2) bool {
	for _, a := range w.Anchors {
		if pos.Dist(a.Pos) < anchorExclusion {
			return false
		}
	}
	crowd := 0
	for _, d := range w.Dynamics {
		dist := pos.Dist(d.Pos)
		if dist < occupyRadius {
			return false
		}
		if dist < ceilingRadius {
			crowd++
		}
	}
	return crowd < w.Cfg.SoftCeiling
}

// promote creates the dynamic entity for an eligible basin. Initial velocity
// direction, speed, and mass derive from the generator seeded by the new id
// and the birth tick, so a replayed run births identical entities.
func (w *World) promote(b *Basin, emit func(Event)) {
	w.born++
	id := fmt.Sprintf("inv-%03d", w.born)

	dir := vec.FromAngle(entropy.Angle(w.Cfg.Seed, w.Tick, id+":dir"))
	speed := entropy.Range(w.Cfg.Seed, w.Tick, id+":spd", 0.04, 0.12)
	mass := entropy.Range(w.Cfg.Seed, w.Tick, id+":mass", 0.8, 1.6)

	basinID := b.ID
	inv := &Invariant{
		ID:           id,
		Pos:          b.Pos,
		Vel:          dir.Scale(speed),
		Mass:         mass,
		Energy:       initialEnergy,
		OriginBasin:  &basinID,
		OriginOffset: vec.V2{},
		Handle:       -1,
	}
	inv.applyGrowth()
	w.addDynamic(inv)
	b.Promoted = true

	emit(Event{
		Kind:     EventPromotion,
		EntityID: id,
		Related:  []string{fmt.Sprintf("basin-%d", b.ID)},
		Reason:   fmt.Sprintf("basin %d settled after %d frames", b.ID, b.Frames),
	})
	emit(Event{Kind: EventBirth, EntityID: id})
}
