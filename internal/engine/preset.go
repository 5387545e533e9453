package engine

// Operator is one pure transform in the per-tick pipeline. Apply may mutate
// the world in place and append events through emit; the caller stamps the
// tick on every emitted event. Given identical state and dt, Apply must be
// byte-reproducible.
type Operator interface {
	Name() string
	Apply(w *World, dt float64, emit func(Event))
}

// Preset is an ordered operator list plus cosmetic flags. The cosmetic flags
// exist for presentation layers and never influence simulation outcome.
type Preset struct {
	ID     string
	Label  string
	Energy bool // selection-pressure economy active

	// Cosmetic.
	Trails  bool
	Palette string

	Operators []Operator
}

// Full returns the complete pipeline in its canonical order.
func Full() Preset {
	return Preset{
		ID:      "full",
		Label:   "Full lattice",
		Energy:  true,
		Trails:  true,
		Palette: "ember",
		Operators: []Operator{
			closureOp{},
			oscillationOp{},
			detectionOp{},
			promotionOp{},
			economicsOp{},
			selectionOp{},
			physicsOp{},
			membraneOp{},
			ceilingOp{},
			distressOp{},
			regulationOp{},
		},
	}
}

// ClosureOnly returns the minimal preset: anchors only, static field, no
// dynamics.
func ClosureOnly() Preset {
	return Preset{
		ID:        "closure",
		Label:     "Closure only",
		Palette:   "mono",
		Operators: []Operator{closureOp{}},
	}
}

// PresetByID resolves the named preset.
func PresetByID(id string) (Preset, bool) {
	switch id {
	case "full":
		return Full(), true
	case "closure":
		return ClosureOnly(), true
	default:
		return Preset{}, false
	}
}
