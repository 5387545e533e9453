// Package engine provides the deterministic per-tick simulation core: the
// operator pipeline, the probe/basin clustering subsystem, the invariant
// lifecycle, the competitive economy, the closed-loop budget regulator, the
// world physics, and the constraint validator.
package engine

import (
	"fmt"
	"hash/fnv"

	"github.com/talgya/fieldsim/internal/field"
	"github.com/talgya/fieldsim/internal/registry"
	"github.com/talgya/fieldsim/internal/vec"
)

// Config holds the construction parameters of a world.
type Config struct {
	Seed        int64
	Budget      float64
	HalfExtent  vec.V2  // domain half-extents
	Overflow    float64 // tolerated margin beyond the half-extents
	MaxEntities int     // lattice cap
	SoftCeiling int     // per-cluster population ceiling
	ProbeCount  int
}

// DefaultConfig returns the standard world parameters.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:        seed,
		Budget:      defaultBudget,
		HalfExtent:  vec.V2{X: defaultHalfExtent, Y: defaultHalfExtent},
		Overflow:    defaultOverflow,
		MaxEntities: defaultLatticeCap,
		SoftCeiling: defaultSoftCeiling,
		ProbeCount:  defaultProbeCount,
	}
}

// World is the complete simulation state, exclusively owned by the stepping
// loop. Anchors and dynamic invariants live in separate collections so
// operators never re-filter a mixed list.
type World struct {
	Cfg Config

	Tick      uint64
	Time      float64
	FieldTime float64 // energy-landscape clock, advanced by the oscillation operator
	Budget    float64
	Integral  float64 // regulator integral term

	// EnergyEnabled switches the economy from intake-only growth to the
	// budget-normalized selection-pressure mode.
	EnergyEnabled bool

	ConstitutionHash string
	constitution     string // hash preimage, kept to detect tampering

	Anchors  []*Invariant
	Dynamics []*Invariant
	byID     map[string]*Invariant

	Probes []*Probe
	Basins []*Basin

	// Pairwise snap-lock state, owned by this instance so independent worlds
	// in one process never share physics state.
	Locks map[lockKey]*snapLock

	Field   *field.Field
	Ledger  *registry.Ledger
	Events  []Event
	Metrics Metrics

	nextBasin uint64
	born      uint64 // dynamic entities ever promoted, drives id generation

	// Per-tick economy pressures, reset each step, read by the alignment
	// evaluator.
	intakePressure  float64
	outflowPressure float64
}

// NewWorld creates a world bound to a preset. The constitution hash pins the
// (seed, preset, operator order) triple; the validator flags any drift.
func NewWorld(cfg Config, p Preset) *World {
	w := &World{
		Cfg:           cfg,
		Budget:        cfg.Budget,
		EnergyEnabled: p.Energy,
		byID:          make(map[string]*Invariant),
		Locks:         make(map[lockKey]*snapLock),
		Field:         field.New(cfg.Seed),
		Ledger:        registry.NewLedger(),
		Probes:        seedProbes(cfg.Seed, cfg.ProbeCount, cfg.HalfExtent),
	}
	w.constitution = constitutionPreimage(cfg.Seed, p)
	w.ConstitutionHash = hashConstitution(w.constitution)
	return w
}

// Lookup returns the invariant with the given id, if it exists.
func (w *World) Lookup(id string) (*Invariant, bool) {
	inv, ok := w.byID[id]
	return inv, ok
}

// SetKinematics overwrites a dynamic entity's position and velocity. This is
// the one sanctioned external mutation channel (pointer-driven dragging);
// between ticks it is an ordinary state transition, not a race.
func (w *World) SetKinematics(id string, pos, vel vec.V2) error {
	inv, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("set kinematics: unknown entity %q", id)
	}
	if !inv.Dynamic {
		return fmt.Errorf("set kinematics: %q is an anchor", id)
	}
	inv.Pos = pos
	inv.Vel = vel
	return nil
}

// addAnchor registers a fixed invariant.
func (w *World) addAnchor(id string, pos vec.V2, strength float64) {
	inv := &Invariant{
		ID:       id,
		Pos:      pos,
		Mass:     5.0,
		Strength: strength,
		Handle:   -1,
	}
	w.Anchors = append(w.Anchors, inv)
	w.byID[id] = inv
}

// addDynamic registers a mobile invariant.
func (w *World) addDynamic(inv *Invariant) {
	inv.Dynamic = true
	w.Dynamics = append(w.Dynamics, inv)
	w.byID[inv.ID] = inv
}

// removeDynamic drops a dead entity from the live collections. The ledger
// entry survives.
func (w *World) removeDynamic(id string) {
	kept := w.Dynamics[:0]
	for _, inv := range w.Dynamics {
		if inv.ID == id {
			continue
		}
		kept = append(kept, inv)
	}
	w.Dynamics = kept
	delete(w.byID, id)
}

// refreshSources rebuilds the density well list from the current anchor and
// dynamic positions.
func (w *World) refreshSources() {
	sources := make([]field.Source, 0, len(w.Anchors)+len(w.Dynamics))
	for _, a := range w.Anchors {
		sources = append(sources, field.Source{Pos: a.Pos, Strength: a.Strength, Sigma: 0.4})
	}
	for _, d := range w.Dynamics {
		sources = append(sources, field.Source{Pos: d.Pos, Strength: d.Strength, Sigma: 0.3})
	}
	w.Field.SetSources(sources)
}

func constitutionPreimage(seed int64, p Preset) string {
	s := fmt.Sprintf("seed=%d;preset=%s;energy=%t;ops=", seed, p.ID, p.Energy)
	for _, op := range p.Operators {
		s += op.Name() + ","
	}
	return s
}

func hashConstitution(preimage string) string {
	h := fnv.New64a()
	h.Write([]byte(preimage))
	return fmt.Sprintf("%016x", h.Sum64())
}
