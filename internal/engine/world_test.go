package engine

import (
	"testing"

	"github.com/talgya/fieldsim/internal/vec"
)

func TestClosureOnlyScenario(t *testing.T) {
	p := ClosureOnly()
	w := NewWorld(DefaultConfig(424242), p)

	w.Step(p, 1.0/30.0)

	if len(w.Anchors) != 2 {
		t.Fatalf("anchors = %d, want 2", len(w.Anchors))
	}

	b, ok := w.Lookup("B")
	if !ok {
		t.Fatal("anchor B missing")
	}
	if b.Pos != (vec.V2{X: -0.5, Y: 0}) {
		t.Fatalf("anchor B at %v, want (-0.5, 0)", b.Pos)
	}
	ci, ok := w.Lookup("Ci")
	if !ok {
		t.Fatal("anchor Ci missing")
	}
	if ci.Pos != (vec.V2{X: 0.5, Y: 0}) {
		t.Fatalf("anchor Ci at %v, want (0.5, 0)", ci.Pos)
	}

	if len(w.Dynamics) != 0 {
		t.Fatalf("dynamics = %d, want 0", len(w.Dynamics))
	}
	if w.Metrics.LivingInvariants != 0 {
		t.Fatalf("metrics.LivingInvariants = %d, want 0", w.Metrics.LivingInvariants)
	}
}

func TestAnchorsNeverDrift(t *testing.T) {
	p := ClosureOnly()
	w := NewWorld(DefaultConfig(7), p)

	for i := 0; i < 50; i++ {
		w.Step(p, 1.0/30.0)
	}

	b, _ := w.Lookup("B")
	if b.Pos != (vec.V2{X: -0.5, Y: 0}) || b.Vel != (vec.V2{}) {
		t.Fatalf("anchor B moved: pos %v vel %v", b.Pos, b.Vel)
	}
}

func TestSetKinematics(t *testing.T) {
	p := ClosureOnly()
	w := NewWorld(DefaultConfig(1), p)
	w.Step(p, 1.0/30.0)

	inv := &Invariant{ID: "inv-001", Energy: 1, Mass: 1, Handle: -1}
	inv.applyGrowth()
	w.addDynamic(inv)

	pos := vec.V2{X: 0.9, Y: -0.4}
	vel := vec.V2{X: 0.1, Y: 0.2}
	if err := w.SetKinematics("inv-001", pos, vel); err != nil {
		t.Fatalf("SetKinematics: %v", err)
	}
	if inv.Pos != pos || inv.Vel != vel {
		t.Fatalf("kinematics not applied: pos %v vel %v", inv.Pos, inv.Vel)
	}

	if err := w.SetKinematics("B", pos, vel); err == nil {
		t.Fatal("expected error writing to an anchor")
	}
	if err := w.SetKinematics("ghost", pos, vel); err == nil {
		t.Fatal("expected error writing to an unknown entity")
	}
}

func TestRunnerDrainsWritesAtTickBoundary(t *testing.T) {
	p := ClosureOnly()
	w := NewWorld(DefaultConfig(1), p)
	w.Step(p, 1.0/30.0)

	inv := &Invariant{ID: "inv-001", Energy: 1, Mass: 1, Handle: -1}
	inv.applyGrowth()
	w.addDynamic(inv)

	r := NewRunner(w, p, 1.0/30.0)
	r.Push(KinematicWrite{ID: "inv-001", Pos: vec.V2{X: 1.5}, Vel: vec.V2{Y: 0.3}})
	r.RunTicks(1)

	if inv.Pos != (vec.V2{X: 1.5}) {
		t.Fatalf("queued write not applied: pos %v", inv.Pos)
	}
	if inv.Vel != (vec.V2{Y: 0.3}) {
		t.Fatalf("queued write not applied: vel %v", inv.Vel)
	}
}

func TestTelemetrySnapshotIsDeepCopy(t *testing.T) {
	p := ClosureOnly()
	w := NewWorld(DefaultConfig(1), p)
	w.Step(p, 1.0/30.0)

	snap := w.Telemetry()
	if len(snap.Anchors) != 2 {
		t.Fatalf("snapshot anchors = %d, want 2", len(snap.Anchors))
	}

	snap.Anchors[0].Pos = vec.V2{X: 99}
	b, _ := w.Lookup(snap.Anchors[0].ID)
	if b.Pos.X == 99 {
		t.Fatal("snapshot mutation reached the live world")
	}
}
