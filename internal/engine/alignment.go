package engine

import (
	"math"

	"github.com/talgya/fieldsim/internal/phi"
)

// RiskTier classifies how far the world economy sits from its healthy band.
type RiskTier uint8

const (
	RiskNominal RiskTier = iota
	RiskElevated
	RiskCritical
)

// String returns the wire label for a risk tier.
func (r RiskTier) String() string {
	switch r {
	case RiskNominal:
		return "nominal"
	case RiskElevated:
		return "elevated"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Assessment is the alignment evaluator's verdict: a risk tier, the gain
// multiplier the regulator should apply, and the raw indicators behind them.
type Assessment struct {
	Tier           RiskTier
	GainMult       float64
	ConservedDelta float64 // |total energy − budget| / budget
	Dominance      float64 // largest strength share
	EntropySpread  float64 // normalized entropy of strength shares, 1 = even
}

// assessAlignment classifies the current conserved-delta, dominance, and
// entropy indicators into a risk tier. Gain multipliers follow the Φ ladder:
// nominal stays at unity, elevated risk amplifies by Φ, critical by Φ².
func (w *World) assessAlignment(totalEnergy float64) Assessment {
	a := Assessment{
		ConservedDelta: math.Abs(totalEnergy-w.Budget) / math.Max(w.Budget, phi.Agnosis),
		Dominance:      w.dominanceIndex(),
		EntropySpread:  w.entropySpread(),
	}

	switch {
	case a.ConservedDelta > phi.Psyche || a.Dominance > phi.Matter ||
		(len(w.Dynamics) > 1 && a.EntropySpread < phi.Agnosis):
		a.Tier = RiskCritical
		a.GainMult = phi.Nous
	case a.ConservedDelta > 0.1 || a.Dominance > dominanceTarget ||
		(len(w.Dynamics) > 1 && a.EntropySpread < phi.Psyche):
		a.Tier = RiskElevated
		a.GainMult = phi.Being
	default:
		a.Tier = RiskNominal
		a.GainMult = phi.Monad
	}
	return a
}

// dominanceIndex returns the largest share of total strength held by a single
// dynamic entity.
func (w *World) dominanceIndex() float64 {
	total, max := 0.0, 0.0
	for _, inv := range w.Dynamics {
		total += inv.Strength
		if inv.Strength > max {
			max = inv.Strength
		}
	}
	if total <= 0 {
		return 0
	}
	return max / total
}

// entropySpread returns the Shannon entropy of the strength distribution,
// normalized to [0,1]. 1 means strength is spread evenly; 0 means one entity
// holds everything.
func (w *World) entropySpread() float64 {
	n := len(w.Dynamics)
	if n < 2 {
		return 1
	}
	total := 0.0
	for _, inv := range w.Dynamics {
		total += inv.Strength
	}
	if total <= 0 {
		return 1
	}
	h := 0.0
	for _, inv := range w.Dynamics {
		p := inv.Strength / total
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	return h / math.Log(float64(n))
}

// economyPressure exposes the per-tick intake and outflow totals as a
// conjugate pair, so the balance ratio of the whole economy can be read off
// the Φ band.
type economyPressure struct {
	intake, outflow float64
}

func (e economyPressure) ChargingPressure() float64    { return e.intake }
func (e economyPressure) DischargingPressure() float64 { return e.outflow }

var _ phi.ConjugatePair = economyPressure{}
