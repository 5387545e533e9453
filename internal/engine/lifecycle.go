package engine

import "fmt"

// ceilingOp applies crowding pressure. Entities packed over the soft cluster
// ceiling leak energy — except the locally strongest, which holds the site.
// This keeps promotion's per-cluster guard honest after entities drift.
type ceilingOp struct{}

func (ceilingOp) Name() string { return "ceiling" }

func (ceilingOp) Apply(w *World, dt float64, emit func(Event)) {
	for _, inv := range w.Dynamics {
		crowd := 0
		strongest := true
		for _, other := range w.Dynamics {
			if other == inv {
				continue
			}
			if inv.Pos.Dist(other.Pos) < ceilingRadius {
				crowd++
				if other.Energy > inv.Energy ||
					(other.Energy == inv.Energy && other.ID < inv.ID) {
					strongest = false
				}
			}
		}
		over := crowd + 1 - w.Cfg.SoftCeiling
		if over <= 0 || strongest {
			continue
		}
		tax := crowdTax * float64(over) * dt
		inv.Energy -= tax
		w.outflowPressure += tax
	}
}

// distressOp runs the grace-period death machine. Distress begins the tick an
// entity's energy first goes negative: a deadline is set one grace window
// ahead. Recovery above the threshold clears it; otherwise the entity is
// removed at the deadline. Transient competitive losses therefore never kill
// — only a sustained deficit does.
type distressOp struct{}

func (distressOp) Name() string { return "distress" }

func (distressOp) Apply(w *World, dt float64, emit func(Event)) {
	var dead []string

	for _, inv := range w.Dynamics {
		switch {
		case inv.Deadline == nil && inv.Energy < 0:
			deadline := w.Tick + graceWindow
			inv.Deadline = &deadline
			emit(Event{
				Kind:     EventDistress,
				EntityID: inv.ID,
				Reason:   fmt.Sprintf("energy deficit, deadline tick %d", deadline),
			})

		case inv.Deadline != nil && inv.Energy >= recoveryThreshold:
			inv.Deadline = nil
			emit(Event{Kind: EventRecovery, EntityID: inv.ID})

		case inv.Deadline != nil && w.Tick >= *inv.Deadline:
			dead = append(dead, inv.ID)
		}
	}

	for _, id := range dead {
		emit(Event{
			Kind:     EventStarvation,
			EntityID: id,
			Reason:   "grace window elapsed",
		})
		emit(Event{Kind: EventDeath, EntityID: id})
		w.removeDynamic(id)
	}
}
