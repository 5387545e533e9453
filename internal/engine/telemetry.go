package engine

import (
	"github.com/talgya/fieldsim/internal/registry"
	"github.com/talgya/fieldsim/internal/vec"
)

// AnchorInfo is the id/position pair exposed for each anchor.
type AnchorInfo struct {
	ID  string `json:"id"`
	Pos vec.V2 `json:"pos"`
}

// Snapshot is the read-only telemetry record handed to presentation layers.
// Everything in it is deeply copied, so a reader never observes a
// half-updated tick.
type Snapshot struct {
	Tick       uint64           `json:"tick"`
	Metrics    Metrics          `json:"metrics"`
	Registry   []registry.Entry `json:"registry"`
	EventCount int              `json:"event_count"`
	Anchors    []AnchorInfo     `json:"anchors"`
}

// Telemetry captures the current snapshot.
func (w *World) Telemetry() Snapshot {
	anchors := make([]AnchorInfo, 0, len(w.Anchors))
	for _, a := range w.Anchors {
		anchors = append(anchors, AnchorInfo{ID: a.ID, Pos: a.Pos})
	}
	return Snapshot{
		Tick:       w.Tick,
		Metrics:    w.Metrics,
		Registry:   w.Ledger.Snapshot(),
		EventCount: len(w.Events),
		Anchors:    anchors,
	}
}
