package engine

// economicsOp runs local competition and measures intake. For every pair of
// dynamic entities inside the suppression radius, the lower-energy side pays
// a fixed penalty; at exactly equal energy the lexicographically lower id
// loses, so runs stay reproducible regardless of slice order. Intake is
// proportional to the probes inside each entity's capture radius. When the
// selection-pressure economy is disabled, intake converts directly into
// energy here.
type economicsOp struct{}

func (economicsOp) Name() string { return "economics" }

func (economicsOp) Apply(w *World, dt float64, emit func(Event)) {
	for i := 0; i < len(w.Dynamics); i++ {
		for j := i + 1; j < len(w.Dynamics); j++ {
			a, b := w.Dynamics[i], w.Dynamics[j]
			if a.Pos.Dist(b.Pos) >= suppressionRadius {
				continue
			}

			loser, winner := a, b
			if a.Energy > b.Energy || (a.Energy == b.Energy && a.ID < b.ID) {
				loser, winner = b, a
			}
			loser.Energy -= suppressionPenalty * dt
			w.outflowPressure += suppressionPenalty * dt

			emit(Event{
				Kind:     EventSuppressed,
				EntityID: loser.ID,
				Related:  []string{winner.ID},
				Reason:   "territorial suppression",
			})
		}
	}

	for _, inv := range w.Dynamics {
		captured := 0
		for _, p := range w.Probes {
			if p.Pos.Dist(inv.Pos) < captureRadius {
				captured++
			}
		}
		inv.intake = float64(captured) * intakePerProbe
		w.intakePressure += inv.intake * dt
	}

	if w.EnergyEnabled {
		return // income handled by selection pressure
	}

	for _, inv := range w.Dynamics {
		inv.Energy += inv.intake * dt
		decay := inv.Energy * decayRate * dt
		if decay > 0 {
			inv.Energy -= decay
			w.outflowPressure += decay
		}
		inv.applyGrowth()
	}
}

// selectionOp is the global selection-pressure economy. Each entity's gain is
// a budget-normalized blend of its intake share and an equal share, followed
// by a fixed decay; a dominance cap taxes any entity holding more than the
// target share of total strength, which is what keeps a single entity from
// capturing the whole budget.
type selectionOp struct{}

func (selectionOp) Name() string { return "selection" }

func (selectionOp) Apply(w *World, dt float64, emit func(Event)) {
	if !w.EnergyEnabled || len(w.Dynamics) == 0 {
		return
	}

	n := float64(len(w.Dynamics))
	totalIntake := 0.0
	for _, inv := range w.Dynamics {
		totalIntake += inv.intake
	}

	for _, inv := range w.Dynamics {
		intakeShare := 0.0
		if totalIntake > 0 {
			intakeShare = inv.intake / totalIntake
		}
		share := intakeWeight*intakeShare + equalWeight/n
		inv.Energy += share * w.Budget * selectionRate * dt

		decay := inv.Energy * decayRate * dt
		if decay > 0 {
			inv.Energy -= decay
			w.outflowPressure += decay
		}
	}

	totalStrength := 0.0
	for _, inv := range w.Dynamics {
		inv.applyGrowth()
		totalStrength += inv.Strength
	}
	if totalStrength <= 0 {
		return
	}
	for _, inv := range w.Dynamics {
		excess := inv.Strength/totalStrength - dominanceTarget
		if excess <= 0 {
			continue
		}
		tax := inv.Energy * excess * dominanceTax * dt
		if tax > 0 {
			inv.Energy -= tax
			w.outflowPressure += tax
			inv.applyGrowth()
		}
	}
}
