package engine

import (
	"testing"

	"github.com/talgya/fieldsim/internal/vec"
)

func suppressionWorld(t *testing.T) (*World, *Invariant, *Invariant) {
	t.Helper()
	w := NewWorld(DefaultConfig(1), ClosureOnly())
	w.Probes = nil // isolate the competition term from intake

	a := &Invariant{ID: "inv-001", Pos: vec.V2{X: 0}, Energy: 5, Mass: 1, Handle: -1}
	b := &Invariant{ID: "inv-002", Pos: vec.V2{X: 0.2}, Energy: 1, Mass: 1, Handle: -1}
	a.applyGrowth()
	b.applyGrowth()
	w.addDynamic(a)
	w.addDynamic(b)
	return w, a, b
}

func TestSuppressionLowerEnergyLoses(t *testing.T) {
	w, a, b := suppressionWorld(t)

	var events []Event
	economicsOp{}.Apply(w, 1.0/30.0, func(ev Event) { events = append(events, ev) })

	if b.Energy >= 1 {
		t.Fatalf("loser energy = %v, want strictly below 1", b.Energy)
	}
	if a.Energy <= b.Energy {
		t.Fatalf("winner energy %v not above loser energy %v", a.Energy, b.Energy)
	}

	found := false
	for _, ev := range events {
		if ev.Kind != EventSuppressed {
			continue
		}
		found = true
		if ev.EntityID != "inv-002" {
			t.Fatalf("suppressed entity = %q, want inv-002", ev.EntityID)
		}
		if len(ev.Related) != 1 || ev.Related[0] != "inv-001" {
			t.Fatalf("suppression related = %v, want [inv-001]", ev.Related)
		}
	}
	if !found {
		t.Fatal("no SUPPRESSED event emitted")
	}
}

func TestSuppressionEqualEnergyTieBreaksOnID(t *testing.T) {
	w, a, b := suppressionWorld(t)
	a.Energy, b.Energy = 2, 2

	var events []Event
	economicsOp{}.Apply(w, 1.0/30.0, func(ev Event) { events = append(events, ev) })

	// At exactly equal energy the lexicographically lower id holds the ground.
	if len(events) != 1 || events[0].EntityID != "inv-002" {
		t.Fatalf("events = %+v, want one suppression of inv-002", events)
	}
	if b.Energy >= a.Energy {
		t.Fatalf("tie loser energy %v not below winner energy %v", b.Energy, a.Energy)
	}
}

func TestSuppressionOutsideRadiusIsFree(t *testing.T) {
	w, a, b := suppressionWorld(t)
	b.Pos = vec.V2{X: suppressionRadius + 0.01}
	ea, eb := a.Energy, b.Energy

	var events []Event
	economicsOp{}.Apply(w, 1.0/30.0, func(ev Event) { events = append(events, ev) })

	if len(events) != 0 {
		t.Fatalf("distant pair emitted events: %+v", events)
	}
	// Decay still runs with the economy disabled, so energies only move down.
	if a.Energy > ea || b.Energy > eb {
		t.Fatalf("distant pair gained energy: %v->%v, %v->%v", ea, a.Energy, eb, b.Energy)
	}
}

func TestIntakeFromCapturedProbes(t *testing.T) {
	w := NewWorld(DefaultConfig(1), ClosureOnly())
	inv := &Invariant{ID: "inv-001", Pos: vec.V2{X: 1.2}, Energy: 1, Mass: 1, Handle: -1}
	inv.applyGrowth()
	w.addDynamic(inv)

	w.Probes = []*Probe{
		{Pos: vec.V2{X: 1.25}, Mass: 1},
		{Pos: vec.V2{X: 1.15, Y: 0.05}, Mass: 1},
		{Pos: vec.V2{X: -1.5}, Mass: 1}, // out of capture range
	}

	economicsOp{}.Apply(w, 1.0/30.0, func(Event) {})

	wantIntake := 2 * intakePerProbe
	if inv.intake != wantIntake {
		t.Fatalf("intake = %v, want %v", inv.intake, wantIntake)
	}
	// Economy disabled: intake minus decay lands directly on energy.
	dt := 1.0 / 30.0
	afterIntake := 1 + wantIntake*dt
	want := afterIntake - afterIntake*decayRate*dt
	if diff := inv.Energy - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("energy = %v, want %v", inv.Energy, want)
	}
}

func TestSelectionSharesBudgetAndTaxesDominance(t *testing.T) {
	w := NewWorld(DefaultConfig(1), Full())
	w.Probes = nil

	big := &Invariant{ID: "inv-001", Pos: vec.V2{X: 1.0}, Energy: 20, Mass: 1, Handle: -1}
	small := &Invariant{ID: "inv-002", Pos: vec.V2{X: -1.0}, Energy: 0.5, Mass: 1, Handle: -1}
	big.applyGrowth()
	small.applyGrowth()
	w.addDynamic(big)
	w.addDynamic(small)

	eBig, eSmall := big.Energy, small.Energy
	selectionOp{}.Apply(w, 1.0/30.0, func(Event) {})

	// With zero intake both receive the equal-share slice, but the dominant
	// holder pays decay plus the dominance tax and nets a loss.
	if big.Energy >= eBig {
		t.Fatalf("dominant energy %v did not fall from %v", big.Energy, eBig)
	}
	if small.Energy <= eSmall {
		t.Fatalf("weak energy %v did not rise from %v", small.Energy, eSmall)
	}
}

func TestSelectionSkipsWhenEconomyDisabled(t *testing.T) {
	w := NewWorld(DefaultConfig(1), ClosureOnly())
	inv := &Invariant{ID: "inv-001", Energy: 1, Mass: 1, Handle: -1}
	inv.applyGrowth()
	w.addDynamic(inv)

	selectionOp{}.Apply(w, 1.0/30.0, func(Event) {})
	if inv.Energy != 1 {
		t.Fatalf("selection ran with economy disabled: energy %v", inv.Energy)
	}
}

func TestGrowthSaturates(t *testing.T) {
	inv := &Invariant{}
	prev := -1.0
	for _, e := range []float64{0, 0.1, 0.5, 1, 2, 5, 20, 1000} {
		inv.Energy = e
		inv.applyGrowth()
		if inv.Strength <= prev {
			t.Fatalf("strength not increasing at energy %v: %v <= %v", e, inv.Strength, prev)
		}
		if inv.Strength >= strengthMax {
			t.Fatalf("strength %v reached the asymptote %v", inv.Strength, strengthMax)
		}
		prev = inv.Strength
	}

	inv.Energy = 1e9
	inv.applyGrowth()
	if inv.Strength < strengthMax*0.999 {
		t.Fatalf("strength %v far from asymptote %v at huge energy", inv.Strength, strengthMax)
	}
	if inv.Stability != 1 {
		t.Fatalf("stability = %v, want clamped to 1", inv.Stability)
	}

	inv.Energy = -3
	inv.applyGrowth()
	if inv.Strength != 0 || inv.Stability != 0 {
		t.Fatalf("negative energy not clamped: strength %v stability %v", inv.Strength, inv.Stability)
	}
}
