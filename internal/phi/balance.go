package phi

// ConjugatePair is any flow with opposed charging and discharging pressures.
// The world economy implements it: charging is intake into the lattice,
// discharging is decay plus regulator taxation.
type ConjugatePair interface {
	// ChargingPressure returns the accumulation pressure (intake, promotion).
	ChargingPressure() float64
	// DischargingPressure returns the expenditure pressure (decay, taxes, deaths).
	DischargingPressure() float64
}

// NullPoint returns the absolute pressure differential — how far the pair
// sits from its lowest-pressure equilibrium.
func NullPoint(p ConjugatePair) float64 {
	cp := p.ChargingPressure()
	dp := p.DischargingPressure()
	if cp > dp {
		return cp - dp
	}
	return dp - cp
}

// BalanceRatio returns 0.0–1.0 indicating how balanced the pair is.
// Perfect balance at 1.0. Ratios inside the golden band Φ⁻¹..Φ are
// considered healthy; outside it, balance falls off linearly and hits
// zero at the Totality ceiling.
func BalanceRatio(p ConjugatePair) float64 {
	dp := p.DischargingPressure()
	if dp < Agnosis {
		dp = Agnosis
	}
	ratio := p.ChargingPressure() / dp

	if ratio >= Matter && ratio <= Being {
		return 1.0
	}

	deviation := ratio - 1.0
	if deviation < 0 {
		deviation = -deviation
	}
	balance := 1.0 - deviation/Totality
	if balance < 0 {
		return 0
	}
	return balance
}
