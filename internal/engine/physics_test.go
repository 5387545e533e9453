package engine

import (
	"testing"

	"github.com/talgya/fieldsim/internal/vec"
)

func physicsWorld(t *testing.T, invs ...*Invariant) *World {
	t.Helper()
	w := NewWorld(DefaultConfig(1), ClosureOnly())
	for _, inv := range invs {
		inv.applyGrowth()
		w.addDynamic(inv)
	}
	return w
}

func TestSpeedCap(t *testing.T) {
	inv := &Invariant{ID: "inv-001", Pos: vec.V2{X: 0.5, Y: 0.5},
		Vel: vec.V2{X: 10}, Energy: 1, Mass: 1, Handle: -1}
	w := physicsWorld(t, inv)

	physicsOp{}.Apply(w, 1.0/30.0, func(Event) {})

	if v := inv.Vel.Len(); v > maxSpeed+1e-9 {
		t.Fatalf("speed %v exceeds cap %v", v, maxSpeed)
	}
}

func TestWallReflection(t *testing.T) {
	inv := &Invariant{ID: "inv-001", Pos: vec.V2{X: 1.99},
		Vel: vec.V2{X: 1.0}, Energy: 1, Mass: 1, Handle: -1}
	w := physicsWorld(t, inv)

	physicsOp{}.Apply(w, 1.0/30.0, func(Event) {})

	if inv.Pos.X > w.Cfg.HalfExtent.X {
		t.Fatalf("position %v beyond the wall", inv.Pos.X)
	}
	if inv.Vel.X >= 0 {
		t.Fatalf("velocity %v not reflected inward", inv.Vel.X)
	}
}

func TestMinimumSpeedKick(t *testing.T) {
	inv := &Invariant{ID: "inv-001", Pos: vec.V2{X: 0.3, Y: 0.2},
		Energy: 1, Mass: 1, Handle: -1}
	w := physicsWorld(t, inv)

	physicsOp{}.Apply(w, 1.0/30.0, func(Event) {})

	if v := inv.Vel.Len(); v < 0.005 {
		t.Fatalf("stalled entity got no kick: speed %v", v)
	}
}

func TestSnapLockPinsThenReleases(t *testing.T) {
	a := &Invariant{ID: "inv-001", Pos: vec.V2{},
		Vel: vec.V2{X: 0.05}, Energy: 1, Mass: 1, Handle: -1}
	b := &Invariant{ID: "inv-002", Pos: vec.V2{X: 0.13},
		Vel: vec.V2{X: -0.05}, Energy: 1, Mass: 1, Handle: -1}
	w := physicsWorld(t, a, b)
	emit := func(Event) {}

	key := pairKey("inv-001", "inv-002")

	w.Tick++
	physicsOp{}.Apply(w, 1.0/30.0, emit)
	lock, ok := w.Locks[key]
	if !ok {
		t.Fatal("closing pair inside the engage radius did not lock")
	}
	until := lock.until

	for w.Tick+1 < until {
		w.Tick++
		physicsOp{}.Apply(w, 1.0/30.0, emit)
		if _, ok := w.Locks[key]; !ok {
			t.Fatalf("lock released early at tick %d (until %d)", w.Tick, until)
		}
		if d := a.Pos.Dist(b.Pos); d < 0.11 || d > 0.15 {
			t.Fatalf("pinned separation drifted to %v at tick %d", d, w.Tick)
		}
	}

	// Ride past the release tick and give the pair room to shear apart.
	for i := 0; i < 8; i++ {
		w.Tick++
		physicsOp{}.Apply(w, 1.0/30.0, emit)
	}

	if _, ok := w.Locks[key]; ok {
		t.Fatalf("lock survived past its window (tick %d, until %d)", w.Tick, until)
	}
	if d := a.Pos.Dist(b.Pos); d <= lockEngageR {
		t.Fatalf("released pair still inside the engage radius: %v", d)
	}
}

func TestMembraneDormantBelowCap(t *testing.T) {
	cfg := DefaultConfig(3)
	cfg.MaxEntities = 3
	w := NewWorld(cfg, ClosureOnly())

	positions := []vec.V2{{X: 0.5}, {X: -0.5}, {Y: 0.6}}
	for i := 0; i < 2; i++ {
		inv := &Invariant{ID: string(rune('a' + i)), Pos: positions[i],
			Energy: 1, Mass: 1, Handle: -1}
		inv.applyGrowth()
		w.addDynamic(inv)
	}

	membraneOp{}.Apply(w, 1.0/30.0, func(Event) {})
	for _, inv := range w.Dynamics {
		if inv.Vel != (vec.V2{}) {
			t.Fatalf("membrane acted below the lattice cap: %s moved to %v", inv.ID, inv.Vel)
		}
	}

	// At the cap the lattice sets: the same entities now feel cohesion.
	third := &Invariant{ID: "c", Pos: positions[2], Energy: 1, Mass: 1, Handle: -1}
	third.applyGrowth()
	w.addDynamic(third)

	membraneOp{}.Apply(w, 1.0/30.0, func(Event) {})
	moved := false
	for _, inv := range w.Dynamics {
		if inv.Vel != (vec.V2{}) {
			moved = true
		}
	}
	if !moved {
		t.Fatal("membrane stayed dormant at the lattice cap")
	}
}
