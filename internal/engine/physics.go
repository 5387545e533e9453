package engine

import (
	"sort"

	"github.com/talgya/fieldsim/internal/entropy"
	"github.com/talgya/fieldsim/internal/vec"
)

// lockKey identifies a snap-locked pair, ids ordered so each pair has exactly
// one key.
type lockKey struct {
	a, b string
}

func pairKey(x, y string) lockKey {
	if x < y {
		return lockKey{x, y}
	}
	return lockKey{y, x}
}

// snapLock pins the separation of a close, closing-velocity pair for a fixed
// tick window, then releases with an outward and tangential impulse. It
// prevents pairs from tunneling through each other while still letting them
// separate eventually.
type snapLock struct {
	dist  float64
	until uint64
}

// physicsOp integrates the dynamic entities: distance-scaled gravity toward
// the origin, short-range pairwise repulsion, snap-lock handling, drag, a
// minimum-speed tangential kick so nothing fully stalls, a hard speed cap,
// and reflection at the domain walls.
type physicsOp struct{}

func (physicsOp) Name() string { return "physics" }

func (physicsOp) Apply(w *World, dt float64, emit func(Event)) {
	for _, inv := range w.Dynamics {
		r := inv.Pos.Len()
		if r > 0 {
			g := gravityGain * r
			if g > gravityCap {
				g = gravityCap
			}
			inv.Vel = inv.Vel.Add(inv.Pos.Norm().Scale(-g * dt))
		}
	}

	w.applyRepulsion(dt)
	w.stepLocks(dt)

	for _, inv := range w.Dynamics {
		inv.Vel = inv.Vel.Scale(1 - dragRate*dt)

		if inv.Vel.Len() < minSpeed {
			ang := entropy.Angle(w.Cfg.Seed, w.Tick, inv.ID+":kick")
			inv.Vel = inv.Vel.Add(vec.FromAngle(ang).Scale(minKick))
		}
		inv.Vel = inv.Vel.ClampLen(maxSpeed)

		inv.Pos = inv.Pos.Add(inv.Vel.Scale(dt))
		w.reflect(inv)
	}
}

// applyRepulsion pushes apart pairs inside the contact radius and engages
// snap-locks for close pairs that are still closing.
func (w *World) applyRepulsion(dt float64) {
	for i := 0; i < len(w.Dynamics); i++ {
		for j := i + 1; j < len(w.Dynamics); j++ {
			a, b := w.Dynamics[i], w.Dynamics[j]
			sep := b.Pos.Sub(a.Pos)
			d := sep.Len()
			if d >= lockEngageR {
				continue
			}

			dir := sep.Norm()
			if d == 0 {
				dir = vec.V2{X: 1}
			}

			if d < contactRadius {
				push := repulsion * (1 - d/contactRadius)
				a.Vel = a.Vel.Add(dir.Scale(-push * dt / a.Mass))
				b.Vel = b.Vel.Add(dir.Scale(push * dt / b.Mass))
			}

			// Closing pair inside the engage radius: pin it.
			closing := b.Vel.Sub(a.Vel).Dot(sep) < 0
			key := pairKey(a.ID, b.ID)
			if _, locked := w.Locks[key]; !locked && closing {
				w.Locks[key] = &snapLock{dist: d, until: w.Tick + lockWindow}
			}
		}
	}
}

// stepLocks enforces active snap-locks in deterministic key order and
// releases expired ones.
func (w *World) stepLocks(dt float64) {
	if len(w.Locks) == 0 {
		return
	}

	keys := make([]lockKey, 0, len(w.Locks))
	for k := range w.Locks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	for _, k := range keys {
		lock := w.Locks[k]
		a, aok := w.byID[k.a]
		b, bok := w.byID[k.b]
		if !aok || !bok {
			delete(w.Locks, k)
			continue
		}

		sep := b.Pos.Sub(a.Pos)
		dir := sep.Norm()
		if sep.LenSq() == 0 {
			dir = vec.V2{X: 1}
		}

		if w.Tick >= lock.until {
			// Release: outward plus tangential impulse so the pair shears apart.
			kick := dir.Scale(releaseKick).Add(dir.Perp().Scale(releaseKick * 0.5))
			a.Vel = a.Vel.Sub(kick)
			b.Vel = b.Vel.Add(kick)
			delete(w.Locks, k)
			continue
		}

		// Pin separation and damp relative slip.
		mid := a.Pos.Add(b.Pos).Scale(0.5)
		a.Pos = mid.Sub(dir.Scale(lock.dist / 2))
		b.Pos = mid.Add(dir.Scale(lock.dist / 2))

		avg := a.Vel.Add(b.Vel).Scale(0.5)
		a.Vel = vec.Lerp(a.Vel, avg, slipDamp)
		b.Vel = vec.Lerp(b.Vel, avg, slipDamp)
	}
}

// reflect bounces an entity off the domain walls with restitution, keeping
// every integrated position inside the half-extents.
func (w *World) reflect(inv *Invariant) {
	hx, hy := w.Cfg.HalfExtent.X, w.Cfg.HalfExtent.Y
	if inv.Pos.X > hx {
		inv.Pos.X = hx
		inv.Vel.X = -inv.Vel.X * wallRestitution
	} else if inv.Pos.X < -hx {
		inv.Pos.X = -hx
		inv.Vel.X = -inv.Vel.X * wallRestitution
	}
	if inv.Pos.Y > hy {
		inv.Pos.Y = hy
		inv.Vel.Y = -inv.Vel.Y * wallRestitution
	} else if inv.Pos.Y < -hy {
		inv.Pos.Y = -hy
		inv.Vel.Y = -inv.Vel.Y * wallRestitution
	}
}
