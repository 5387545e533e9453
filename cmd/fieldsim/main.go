// Command fieldsim runs the scalar-field lattice simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/fieldsim/internal/api"
	"github.com/talgya/fieldsim/internal/engine"
	"github.com/talgya/fieldsim/internal/persistence"
	"github.com/talgya/fieldsim/internal/phi"
)

func main() {
	var (
		seed          = flag.Int64("seed", 42, "determinism seed")
		dt            = flag.Float64("dt", 1.0/30.0, "fixed timestep in sim-seconds")
		speed         = flag.Float64("speed", 1.0, "tick pacing multiplier (0 = paused)")
		ticks         = flag.Uint64("ticks", 0, "run exactly N ticks headless, then exit (0 = run forever)")
		port          = flag.Int("port", 8080, "HTTP API port (0 = disabled)")
		dbPath        = flag.String("db", "", "telemetry archive path (empty = no archive)")
		presetID      = flag.String("preset", "full", "operator preset: full or closure")
		maxEntities   = flag.Int("max-entities", 12, "lattice cap")
		snapshotEvery = flag.Uint64("snapshot-every", 30, "publish telemetry every N ticks")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("fieldsim — scalar-field lattice simulation")
	slog.Info("tuning ladder",
		"phi", phi.Phi,
		"agnosis", fmt.Sprintf("%.5f", phi.Agnosis),
		"matter", fmt.Sprintf("%.5f", phi.Matter),
		"being", fmt.Sprintf("%.5f", phi.Being),
	)

	preset, ok := engine.PresetByID(*presetID)
	if !ok {
		slog.Error("unknown preset", "preset", *presetID)
		os.Exit(1)
	}

	cfg := engine.DefaultConfig(*seed)
	cfg.MaxEntities = *maxEntities
	world := engine.NewWorld(cfg, preset)

	slog.Info("world ready",
		"seed", *seed,
		"preset", preset.ID,
		"probes", len(world.Probes),
		"lattice_cap", cfg.MaxEntities,
		"budget", cfg.Budget,
		"constitution", world.ConstitutionHash,
	)

	runner := engine.NewRunner(world, preset, *dt)
	runner.Speed = *speed
	runner.SnapshotEvery = *snapshotEvery

	// ── Telemetry archive (optional, write-only) ──────────────────────
	if *dbPath != "" {
		archive, err := persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		defer archive.Close()
		slog.Info("telemetry archive opened", "path", *dbPath)

		runner.OnSnapshot = func(snap engine.Snapshot) {
			if err := archive.Record(snap); err != nil {
				slog.Error("archive record failed", "tick", snap.Tick, "error", err)
			}
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if *port > 0 {
		adminKey := os.Getenv("FIELDSIM_ADMIN_KEY")
		if adminKey == "" {
			slog.Warn("FIELDSIM_ADMIN_KEY not set — control POST endpoint disabled")
		}
		apiServer := &api.Server{
			Runner:   runner,
			Port:     *port,
			AdminKey: adminKey,
		}
		apiServer.Start()
	}

	// ── Headless fixed-tick run ───────────────────────────────────────
	if *ticks > 0 {
		runner.RunTicks(*ticks)
		snap := world.Telemetry()
		slog.Info("run complete",
			"tick", snap.Tick,
			"living_invariants", snap.Metrics.LivingInvariants,
			"total_energy", fmt.Sprintf("%.3f", snap.Metrics.TotalEnergy),
			"risk", snap.Metrics.Risk,
			"registry_entries", len(snap.Registry),
		)
		return
	}

	// ── Paced run until signal ────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	fmt.Printf("\nLattice is live: seed %d, preset %q, cap %d.\n", *seed, preset.ID, cfg.MaxEntities)
	if *port > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	}
	fmt.Println("Running... (Ctrl+C to stop)")

	runner.Run()
}
