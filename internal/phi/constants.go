// Package phi provides the simulation's tuning ladder, derived from the
// golden ratio. Thresholds, blends, and decay rates trace back to powers of Φ
// rather than free-floating magic numbers.
package phi

import "math"

// Phi is the golden ratio.
const Phi = 1.6180339887498948

// The emanation ladder: powers of Phi used as the canonical small constants.
var (
	// Agnosis (Φ⁻³): baseline entropy — decay rates, noise floors.
	// ~24% — the base rate of loss in all flows.
	Agnosis = math.Pow(Phi, -3) // 0.23606...

	// Psyche (Φ⁻²): coherence seed — EMA blend weights, recovery margins.
	// ~38% — the threshold of meaningful persistence.
	Psyche = math.Pow(Phi, -2) // 0.38197...

	// Matter (Φ⁻¹): the persistent fraction — smoothing, retention.
	// ~62% — what survives one transformation.
	Matter = math.Pow(Phi, -1) // 0.61803...

	// Monad: unity, baseline. Always 1.0.
	Monad = 1.0

	// Being (Φ¹): growth factor — gain amplification under elevated stress.
	Being = Phi // 1.61803...

	// Nous (Φ²): the critical amplifier — regulator gains at critical risk.
	Nous = math.Pow(Phi, 2) // 2.61803...

	// Totality (Φ³): the collapse ceiling — max tolerated imbalance ratio.
	Totality = math.Pow(Phi, 3) // 4.23606...
)
