package engine

import "github.com/talgya/fieldsim/internal/phi"

// regulationOp is the closed-loop budget controller: a PI regulator on the
// error between total dynamic energy and the global budget. Inside the
// deadband the integral term bleeds off and nothing is corrected (hysteresis
// at equilibrium). Excess energy is removed proportional to each entity's
// energy share, punishing the biggest holders; deficits are filled with a
// blend of inverse-energy share and equal share, favoring the weakest. Gains
// scale with the alignment evaluator's risk classification, so the controller
// gets aggressive exactly when the metrics say the system is unstable.
type regulationOp struct{}

func (regulationOp) Name() string { return "regulation" }

func (regulationOp) Apply(w *World, dt float64, emit func(Event)) {
	if !w.EnergyEnabled || len(w.Dynamics) == 0 {
		return
	}

	total := 0.0
	for _, inv := range w.Dynamics {
		total += inv.Energy
	}

	assess := w.assessAlignment(total)
	errorE := total - w.Budget
	deadband := deadbandFrac * w.Budget

	if errorE > -deadband && errorE < deadband {
		w.Integral *= 1 - integralDecay*dt
		return
	}

	w.Integral += errorE * dt
	clamp := integralClampX * w.Budget
	if w.Integral > clamp {
		w.Integral = clamp
	} else if w.Integral < -clamp {
		w.Integral = -clamp
	}

	control := (regulatorKp*errorE + regulatorKi*w.Integral) * assess.GainMult
	delta := control * dt

	if delta > 0 {
		// Excess: take from each in proportion to its energy share.
		if total <= 0 {
			return
		}
		for _, inv := range w.Dynamics {
			cut := delta * inv.Energy / total
			if cut > inv.Energy {
				cut = inv.Energy
			}
			inv.Energy -= cut
			w.outflowPressure += cut
			inv.applyGrowth()
		}
		return
	}

	// Deficit: feed the weakest first, countering the dominance spiral.
	add := -delta
	n := float64(len(w.Dynamics))
	invSum := 0.0
	for _, inv := range w.Dynamics {
		e := inv.Energy
		if e < 0 {
			e = 0
		}
		invSum += 1 / (e + phi.Psyche)
	}
	for _, inv := range w.Dynamics {
		e := inv.Energy
		if e < 0 {
			e = 0
		}
		invShare := (1 / (e + phi.Psyche)) / invSum
		grant := add * (phi.Matter*invShare + (1-phi.Matter)/n)
		inv.Energy += grant
		w.intakePressure += grant
		inv.applyGrowth()
	}
}
