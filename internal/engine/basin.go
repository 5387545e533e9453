package engine

import (
	"fmt"

	"github.com/talgya/fieldsim/internal/vec"
)

// Basin is a spatially persistent dense cluster of probes — the precursor to
// a promoted entity. A basin gains one persistence frame for every tick a
// matching cluster appears, and loses one for every tick it goes unmatched;
// at zero frames it is removed.
type Basin struct {
	ID       uint64 `json:"id"`
	Pos      vec.V2 `json:"pos"` // EMA-smoothed center
	Count    int    `json:"count"`
	Frames   int    `json:"frames"`
	Matched  bool   `json:"matched"`
	Promoted bool   `json:"promoted"`
}

type cluster struct {
	center vec.V2
	sum    vec.V2
	n      int
}

// clusterProbes groups the probe positions with greedy nearest-center
// single-linkage: each point joins the nearest existing cluster center inside
// the cluster radius, first-created cluster winning exact ties, else it
// starts a new cluster. Centers are running means. Probe index order makes
// the result deterministic.
func clusterProbes(probes []*Probe) []*cluster {
	var clusters []*cluster
	for _, p := range probes {
		var best *cluster
		bestDist := clusterRadius
		for _, c := range clusters {
			d := p.Pos.Dist(c.center)
			if d < bestDist {
				best = c
				bestDist = d
			}
		}
		if best == nil {
			clusters = append(clusters, &cluster{center: p.Pos, sum: p.Pos, n: 1})
			continue
		}
		best.n++
		best.sum = best.sum.Add(p.Pos)
		best.center = best.sum.Scale(1 / float64(best.n))
	}
	return clusters
}

// detectBasins matches this tick's dense clusters against the basin list,
// blending matched basins toward the fresh center and advancing their
// persistence counter. Unmatched basins decay; exhausted basins are removed;
// basins drifting onto each other merge into the older one.
func (w *World) detectBasins(emit func(Event)) {
	for _, b := range w.Basins {
		b.Matched = false
	}

	for _, c := range clusterProbes(w.Probes) {
		if c.n < minClusterSize {
			continue
		}

		var best *Basin
		bestDist := basinMatchR
		for _, b := range w.Basins {
			if b.Matched {
				continue
			}
			d := c.center.Dist(b.Pos)
			if d < bestDist {
				best = b
				bestDist = d
			}
		}

		if best != nil {
			best.Pos = vec.Lerp(best.Pos, c.center, basinBlend)
			best.Count = c.n
			best.Frames++
			best.Matched = true
			continue
		}

		w.nextBasin++
		w.Basins = append(w.Basins, &Basin{
			ID:      w.nextBasin,
			Pos:     c.center,
			Count:   c.n,
			Frames:  1,
			Matched: true,
		})
	}

	kept := w.Basins[:0]
	for _, b := range w.Basins {
		if !b.Matched {
			b.Frames--
			b.Count = 0
		}
		if b.Frames > 0 {
			kept = append(kept, b)
		}
	}
	w.Basins = kept

	w.mergeBasins(emit)
}

// mergeBasins folds basins that have drifted within the merge radius into the
// older of the pair.
func (w *World) mergeBasins(emit func(Event)) {
	kept := make([]*Basin, 0, len(w.Basins))
	for _, b := range w.Basins {
		merged := false
		for _, older := range kept {
			if b.Pos.Dist(older.Pos) < basinMergeR {
				older.Pos = vec.Lerp(older.Pos, b.Pos, 0.5)
				if b.Count > older.Count {
					older.Count = b.Count
				}
				if b.Frames > older.Frames {
					older.Frames = b.Frames
				}
				if b.Promoted {
					older.Promoted = true
				}
				emit(Event{
					Kind:   EventMerge,
					Reason: fmt.Sprintf("basin %d absorbed basin %d", older.ID, b.ID),
				})
				merged = true
				break
			}
		}
		if !merged {
			kept = append(kept, b)
		}
	}
	w.Basins = kept
}
