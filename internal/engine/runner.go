package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/fieldsim/internal/vec"
)

// KinematicWrite is a queued external position/velocity overwrite.
type KinematicWrite struct {
	ID  string `json:"id"`
	Pos vec.V2 `json:"pos"`
	Vel vec.V2 `json:"vel"`
}

// Runner paces the pure stepping loop against the wall clock and owns the
// boundary between the single-threaded core and its observers: external
// writes queue up and drain between ticks in arrival order, and a deep
// telemetry snapshot is published every Nth tick.
type Runner struct {
	World  *World
	Preset Preset
	DT     float64

	Speed         float64       // multiplier: 1.0 = real-time, 0 = paused
	Interval      time.Duration // base tick interval
	SnapshotEvery uint64
	Running       bool

	// OnSnapshot fires after each published snapshot (telemetry sinks).
	OnSnapshot func(Snapshot)

	mu      sync.Mutex
	pending []KinematicWrite
	latest  Snapshot
}

// NewRunner creates a paced runner with default settings.
func NewRunner(w *World, p Preset, dt float64) *Runner {
	r := &Runner{
		World:         w,
		Preset:        p,
		DT:            dt,
		Speed:         1.0,
		Interval:      33 * time.Millisecond,
		SnapshotEvery: 30,
	}
	r.publish()
	return r
}

// Push queues an external kinematic overwrite for the next tick boundary.
func (r *Runner) Push(kw KinematicWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, kw)
}

// Latest returns the most recently published snapshot.
func (r *Runner) Latest() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Run starts the paced loop. Blocks until Stop is called.
func (r *Runner) Run() {
	r.Running = true
	slog.Info("runner started", "tick", r.World.Tick, "speed", r.Speed, "dt", r.DT)

	for r.Running {
		if r.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		r.tickOnce()

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / r.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("runner stopped", "tick", r.World.Tick)
}

// RunTicks advances exactly n ticks without pacing. Used for headless runs.
func (r *Runner) RunTicks(n uint64) {
	for i := uint64(0); i < n; i++ {
		r.tickOnce()
	}
}

// Stop halts the loop after the current tick.
func (r *Runner) Stop() {
	r.Running = false
}

func (r *Runner) tickOnce() {
	r.mu.Lock()
	writes := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, kw := range writes {
		if err := r.World.SetKinematics(kw.ID, kw.Pos, kw.Vel); err != nil {
			slog.Debug("external write dropped", "error", err)
		}
	}

	r.World.Step(r.Preset, r.DT)

	if r.SnapshotEvery > 0 && r.World.Tick%r.SnapshotEvery == 0 {
		snap := r.publish()
		if r.OnSnapshot != nil {
			r.OnSnapshot(snap)
		}
	}
}

func (r *Runner) publish() Snapshot {
	snap := r.World.Telemetry()
	r.mu.Lock()
	r.latest = snap
	r.mu.Unlock()
	return snap
}
