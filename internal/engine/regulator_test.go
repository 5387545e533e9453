package engine

import (
	"math"
	"testing"

	"github.com/talgya/fieldsim/internal/vec"
)

func regulatedWorld(t *testing.T, energies ...float64) *World {
	t.Helper()
	p := Preset{ID: "regulated", Label: "Regulated", Energy: true,
		Operators: []Operator{regulationOp{}}}
	w := NewWorld(DefaultConfig(1), p)
	for i, e := range energies {
		inv := &Invariant{
			ID:     string(rune('a' + i)),
			Pos:    vec.V2{X: float64(i)},
			Energy: e,
			Mass:   1,
			Handle: -1,
		}
		inv.applyGrowth()
		w.addDynamic(inv)
	}
	return w
}

func totalEnergy(w *World) float64 {
	total := 0.0
	for _, inv := range w.Dynamics {
		total += inv.Energy
	}
	return total
}

func TestRegulatorClosesDeficit(t *testing.T) {
	w := regulatedWorld(t, 1, 2, 3)
	emit := func(Event) {}

	for i := 0; i < 5000; i++ {
		regulationOp{}.Apply(w, 1.0/30.0, emit)
	}

	deadband := deadbandFrac * w.Budget
	if diff := math.Abs(totalEnergy(w) - w.Budget); diff > deadband {
		t.Fatalf("total energy %v still %v from budget %v (deadband %v)",
			totalEnergy(w), diff, w.Budget, deadband)
	}

	// Inside the deadband the controller must hold, not oscillate back out.
	for i := 0; i < 500; i++ {
		regulationOp{}.Apply(w, 1.0/30.0, emit)
	}
	if diff := math.Abs(totalEnergy(w) - w.Budget); diff > deadband {
		t.Fatalf("controller left the deadband again: total %v", totalEnergy(w))
	}
}

func TestRegulatorDrainsExcess(t *testing.T) {
	w := regulatedWorld(t, 30, 20, 10)
	emit := func(Event) {}

	for i := 0; i < 5000; i++ {
		regulationOp{}.Apply(w, 1.0/30.0, emit)
		for _, inv := range w.Dynamics {
			if inv.Energy < 0 {
				t.Fatalf("drain pushed %s negative: %v", inv.ID, inv.Energy)
			}
		}
	}

	deadband := deadbandFrac * w.Budget
	if diff := math.Abs(totalEnergy(w) - w.Budget); diff > deadband {
		t.Fatalf("total energy %v still outside the deadband", totalEnergy(w))
	}
}

func TestRegulatorIdlesInsideDeadband(t *testing.T) {
	w := regulatedWorld(t, 12, 12)
	w.Integral = 5

	regulationOp{}.Apply(w, 1.0/30.0, func(Event) {})

	if e := totalEnergy(w); e != 24 {
		t.Fatalf("deadband pass changed total energy to %v", e)
	}
	if w.Integral >= 5 {
		t.Fatalf("integral did not bleed off: %v", w.Integral)
	}
}

func TestRegulatorFavorsWeakestOnDeficit(t *testing.T) {
	w := regulatedWorld(t, 0.5, 10)
	weak, strong := w.Dynamics[0], w.Dynamics[1]
	eWeak, eStrong := weak.Energy, strong.Energy

	regulationOp{}.Apply(w, 1.0/30.0, func(Event) {})

	gainWeak := weak.Energy - eWeak
	gainStrong := strong.Energy - eStrong
	if gainWeak <= gainStrong {
		t.Fatalf("weak gained %v, strong gained %v; want weak favored", gainWeak, gainStrong)
	}
	if gainStrong <= 0 {
		t.Fatalf("strong received nothing: %v", gainStrong)
	}
}

func TestRegulatorSkipsWhenEconomyDisabled(t *testing.T) {
	w := NewWorld(DefaultConfig(1), ClosureOnly())
	inv := &Invariant{ID: "inv-001", Energy: 1, Mass: 1, Handle: -1}
	inv.applyGrowth()
	w.addDynamic(inv)

	regulationOp{}.Apply(w, 1.0/30.0, func(Event) {})
	if inv.Energy != 1 {
		t.Fatalf("regulator ran with economy disabled: energy %v", inv.Energy)
	}
}
