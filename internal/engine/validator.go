package engine

import (
	"fmt"
	"math"
	"strings"
)

// Constraint reason codes emitted by the validator.
const (
	violationBoundedDomain  = "BOUNDED_DOMAIN"
	violationFiniteValues   = "FINITE_VALUES"
	violationFiniteBudget   = "FINITE_BUDGET"
	violationConstitution   = "CONSTITUTION_IMMUTABLE"
)

// validate runs the post-step constraint checks. Violations are soft: they
// are concatenated into one SUPPRESSED event and never mutate state or block
// the next tick.
func (w *World) validate(emit func(Event)) {
	var violations []string

	bx := w.Cfg.HalfExtent.X + w.Cfg.Overflow
	by := w.Cfg.HalfExtent.Y + w.Cfg.Overflow

	check := func(inv *Invariant) {
		if math.Abs(inv.Pos.X) > bx || math.Abs(inv.Pos.Y) > by {
			violations = append(violations, fmt.Sprintf("%s:%s", violationBoundedDomain, inv.ID))
		}
		if !finite(inv.Energy) || !finite(inv.Strength) || !finite(inv.Stability) {
			violations = append(violations, fmt.Sprintf("%s:%s", violationFiniteValues, inv.ID))
		}
	}
	for _, inv := range w.Anchors {
		check(inv)
	}
	for _, inv := range w.Dynamics {
		check(inv)
	}

	if !finite(w.Budget) || w.Budget < 0 {
		violations = append(violations, violationFiniteBudget)
	}
	if hashConstitution(w.constitution) != w.ConstitutionHash {
		violations = append(violations, violationConstitution)
	}

	if len(violations) == 0 {
		return
	}
	emit(Event{
		Kind:   EventSuppressed,
		Reason: strings.Join(violations, ";"),
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
