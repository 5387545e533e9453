package engine

// Step advances the world by one tick: clear the event buffer, advance
// tick/time, run the preset's operators strictly in order, sample the
// registry, fold the tick's events into it, recompute metrics, and run the
// validator. No operator is skipped conditionally except by its own internal
// population and threshold guards.
func (w *World) Step(p Preset, dt float64) {
	w.Events = w.Events[:0]
	w.Tick++
	w.Time += dt
	w.intakePressure = 0
	w.outflowPressure = 0

	emit := func(ev Event) {
		ev.Tick = w.Tick
		w.Events = append(w.Events, ev)
	}

	w.refreshSources()

	for _, op := range p.Operators {
		op.Apply(w, dt, emit)
	}

	w.sampleRegistry()
	w.foldEvents()
	w.Metrics = w.computeMetrics()
	w.validate(emit)
}

// sampleRegistry appends one observation per living dynamic entity. Entities
// born this tick have no ledger handle yet; their first sample lands next
// tick.
func (w *World) sampleRegistry() {
	for _, inv := range w.Dynamics {
		if inv.Handle < 0 {
			continue
		}
		w.Ledger.Sample(inv.Handle, w.Tick, inv.Energy, inv.Pos, inv.Strength)
	}
}

// foldEvents replays the tick's events into the ledger: births open entries,
// deaths seal them, suppressions credit the winner's territory, and deaths
// with an attributed winner credit a kill. Events are the only channel from
// the operators into the registry.
func (w *World) foldEvents() {
	for _, ev := range w.Events {
		switch ev.Kind {
		case EventBirth:
			h := w.Ledger.Birth(ev.EntityID, ev.Tick, ev.Related)
			if inv, ok := w.byID[ev.EntityID]; ok {
				inv.Handle = h
			}

		case EventDeath:
			if h, ok := w.Ledger.Lookup(ev.EntityID); ok {
				w.Ledger.Seal(h, ev.Tick)
			}
			for _, winner := range ev.Related {
				w.Ledger.CreditKill(winner)
			}

		case EventSuppressed:
			for _, winner := range ev.Related {
				w.Ledger.CreditTerritory(winner)
			}
		}
	}
}
