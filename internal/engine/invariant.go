package engine

import (
	"math"

	"github.com/talgya/fieldsim/internal/registry"
	"github.com/talgya/fieldsim/internal/vec"
)

// Invariant is a persistent entity in the world. Anchors are fixed,
// non-competing contributors to the density field; dynamic invariants are
// mobile, mortal agents born from promoted basins. Anchors never mutate
// position, energy, or strength, and are excluded from the lifecycle and the
// competitive economy.
type Invariant struct {
	ID  string `json:"id"`
	Pos vec.V2 `json:"pos"`
	Vel vec.V2 `json:"vel"`

	Mass      float64 `json:"mass"`
	Strength  float64 `json:"strength"`
	Energy    float64 `json:"energy"`
	Stability float64 `json:"stability"` // 0.0–1.0
	Dynamic   bool    `json:"dynamic"`

	// Distress: set the tick energy first goes negative, cleared on recovery.
	Deadline *uint64 `json:"deadline,omitempty"`

	// Provenance of a promoted entity.
	OriginBasin  *uint64 `json:"origin_basin,omitempty"`
	OriginOffset vec.V2  `json:"origin_offset"`

	// Ledger handle, assigned when the birth event is folded. -1 until then.
	Handle registry.Handle `json:"-"`

	// Per-tick intake measured by the economics operator, consumed by the
	// selection operator. Transient.
	intake float64
}

// InDistress reports whether the grace-period clock is running.
func (inv *Invariant) InDistress() bool { return inv.Deadline != nil }

// applyGrowth recomputes strength and stability from energy. Strength is a
// saturating function of energy so growth can never run away; stability is
// energy clamped to [0,1] against a fixed scale. Negative or non-finite
// energy is clamped to zero before use.
func (inv *Invariant) applyGrowth() {
	e := inv.Energy
	if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
		e = 0
	}
	inv.Strength = strengthMax * e / (1 + e)
	st := e / stabilityScale
	if st > 1 {
		st = 1
	}
	inv.Stability = st
}
