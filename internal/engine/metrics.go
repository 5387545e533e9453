package engine

import "github.com/talgya/fieldsim/internal/phi"

// Metrics is the observable scalar summary of the world state, recomputed at
// the end of every tick.
type Metrics struct {
	Tick             uint64  `json:"tick"`
	LivingInvariants int     `json:"living_invariants"`
	TotalEnergy      float64 `json:"total_energy"`
	MeanEnergy       float64 `json:"mean_energy"`
	TotalStrength    float64 `json:"total_strength"`
	DominanceIndex   float64 `json:"dominance_index"`
	EntropySpread    float64 `json:"entropy_spread"`
	ConservedDelta   float64 `json:"conserved_delta"`
	Balance          float64 `json:"balance"`
	Budget           float64 `json:"budget"`
	Risk             string  `json:"risk"`
	ProbeCount       int     `json:"probe_count"`
	BasinCount       int     `json:"basin_count"`
	EventCount       int     `json:"event_count"`
}

// computeMetrics aggregates the tick's summary through the alignment
// evaluator.
func (w *World) computeMetrics() Metrics {
	totalEnergy, totalStrength := 0.0, 0.0
	for _, inv := range w.Dynamics {
		totalEnergy += inv.Energy
		totalStrength += inv.Strength
	}

	assess := w.assessAlignment(totalEnergy)

	m := Metrics{
		Tick:             w.Tick,
		LivingInvariants: len(w.Dynamics),
		TotalEnergy:      totalEnergy,
		TotalStrength:    totalStrength,
		DominanceIndex:   assess.Dominance,
		EntropySpread:    assess.EntropySpread,
		ConservedDelta:   assess.ConservedDelta,
		Balance: phi.BalanceRatio(economyPressure{
			intake:  w.intakePressure,
			outflow: w.outflowPressure,
		}),
		Budget:     w.Budget,
		Risk:       assess.Tier.String(),
		ProbeCount: len(w.Probes),
		BasinCount: len(w.Basins),
		EventCount: len(w.Events),
	}
	if m.LivingInvariants > 0 {
		m.MeanEnergy = totalEnergy / float64(m.LivingInvariants)
	}
	return m
}
