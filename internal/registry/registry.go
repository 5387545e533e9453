// Package registry provides the append-only birth/death/sampling ledger.
// Entries live in an arena addressed by stable integer handles; the string id
// is kept as a display label only. The ledger exclusively owns history — live
// kinematic state stays with the engine's entities.
package registry

import (
	"sort"

	"github.com/talgya/fieldsim/internal/vec"
)

// HistoryCap bounds the per-entry energy/position history rings.
const HistoryCap = 1200

// Handle addresses an entry in the ledger arena. Handles are never reused.
type Handle int

// Sample is one per-tick observation of a living entity.
type Sample struct {
	Tick   uint64  `json:"tick"`
	Energy float64 `json:"energy"`
}

// Entry is the permanent record of one entity. Once sealed (DeathTick set)
// it is never mutated again.
type Entry struct {
	ID        string  `json:"id"`
	BirthTick uint64  `json:"birth_tick"`
	DeathTick *uint64 `json:"death_tick,omitempty"`
	Parents   []string `json:"parents,omitempty"`

	Energy    []Sample `json:"energy"`
	Positions []vec.V2 `json:"positions"`

	PeakStrength  float64 `json:"peak_strength"`
	Kills         int     `json:"kills"`
	TerritoryWins int     `json:"territory_wins"`
}

// Alive reports whether the entry has not been sealed yet.
func (e *Entry) Alive() bool { return e.DeathTick == nil }

// Ledger is the arena of entries.
type Ledger struct {
	entries []*Entry
	byID    map[string]Handle
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[string]Handle)}
}

// Birth appends a new entry and returns its handle.
func (l *Ledger) Birth(id string, tick uint64, parents []string) Handle {
	e := &Entry{
		ID:        id,
		BirthTick: tick,
		Parents:   append([]string(nil), parents...),
	}
	h := Handle(len(l.entries))
	l.entries = append(l.entries, e)
	l.byID[id] = h
	return h
}

// Seal sets the death tick on an entry. Sealing twice is a no-op.
func (l *Ledger) Seal(h Handle, tick uint64) {
	e := l.entry(h)
	if e == nil || e.DeathTick != nil {
		return
	}
	t := tick
	e.DeathTick = &t
}

// Sample appends one observation to an entry's bounded history rings.
// Sealed entries ignore further samples.
func (l *Ledger) Sample(h Handle, tick uint64, energy float64, pos vec.V2, strength float64) {
	e := l.entry(h)
	if e == nil || e.DeathTick != nil {
		return
	}
	e.Energy = append(e.Energy, Sample{Tick: tick, Energy: energy})
	if len(e.Energy) > HistoryCap {
		e.Energy = e.Energy[len(e.Energy)-HistoryCap:]
	}
	e.Positions = append(e.Positions, pos)
	if len(e.Positions) > HistoryCap {
		e.Positions = e.Positions[len(e.Positions)-HistoryCap:]
	}
	if strength > e.PeakStrength {
		e.PeakStrength = strength
	}
}

// CreditKill increments the kill counter for the entity with the given id.
func (l *Ledger) CreditKill(id string) {
	if h, ok := l.byID[id]; ok {
		l.entries[h].Kills++
	}
}

// CreditTerritory increments the territory-win counter for the given id.
func (l *Ledger) CreditTerritory(id string) {
	if h, ok := l.byID[id]; ok {
		l.entries[h].TerritoryWins++
	}
}

// Lookup returns the handle for a string id.
func (l *Ledger) Lookup(id string) (Handle, bool) {
	h, ok := l.byID[id]
	return h, ok
}

// Get returns the entry for a handle, or nil for an invalid handle.
func (l *Ledger) Get(h Handle) *Entry { return l.entry(h) }

// Len returns the number of entries ever recorded.
func (l *Ledger) Len() int { return len(l.entries) }

// Snapshot returns a deep copy of all entries, ordered by birth tick then id,
// safe to hand to a concurrent reader.
func (l *Ledger) Snapshot() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		c := Entry{
			ID:            e.ID,
			BirthTick:     e.BirthTick,
			PeakStrength:  e.PeakStrength,
			Kills:         e.Kills,
			TerritoryWins: e.TerritoryWins,
			Parents:       append([]string(nil), e.Parents...),
			Energy:        append([]Sample(nil), e.Energy...),
			Positions:     append([]vec.V2(nil), e.Positions...),
		}
		if e.DeathTick != nil {
			t := *e.DeathTick
			c.DeathTick = &t
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BirthTick != out[j].BirthTick {
			return out[i].BirthTick < out[j].BirthTick
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (l *Ledger) entry(h Handle) *Entry {
	if h < 0 || int(h) >= len(l.entries) {
		return nil
	}
	return l.entries[h]
}
