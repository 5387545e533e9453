// Package persistence provides the optional SQLite telemetry archive.
// The archive is a write-only collaborator: it records the metrics trace and
// the registry as snapshots arrive, and the core never reads anything back —
// a run is reproduced from its seed, not from disk.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/fieldsim/internal/engine"
)

// Archive wraps a SQLite connection for telemetry recording.
type Archive struct {
	conn *sqlx.DB
}

// Open opens or creates an archive at the given path.
func Open(path string) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

// Close closes the archive connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metrics (
		tick INTEGER PRIMARY KEY,
		living_invariants INTEGER NOT NULL,
		total_energy REAL NOT NULL,
		total_strength REAL NOT NULL,
		dominance_index REAL NOT NULL,
		entropy_spread REAL NOT NULL,
		conserved_delta REAL NOT NULL,
		balance REAL NOT NULL,
		budget REAL NOT NULL,
		risk TEXT NOT NULL,
		probe_count INTEGER NOT NULL,
		basin_count INTEGER NOT NULL,
		event_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS registry (
		id TEXT PRIMARY KEY,
		birth_tick INTEGER NOT NULL,
		death_tick INTEGER,
		peak_strength REAL NOT NULL,
		kills INTEGER NOT NULL,
		territory_wins INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_registry_birth ON registry(birth_tick);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// Record writes one snapshot: the metrics row for its tick plus the current
// registry state (full upsert — entries are tiny and bounded by the ledger).
func (a *Archive) Record(snap engine.Snapshot) error {
	tx, err := a.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	m := snap.Metrics
	if _, err := tx.Exec(`INSERT OR REPLACE INTO metrics
		(tick, living_invariants, total_energy, total_strength, dominance_index,
		 entropy_spread, conserved_delta, balance, budget, risk,
		 probe_count, basin_count, event_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Tick, m.LivingInvariants, m.TotalEnergy, m.TotalStrength,
		m.DominanceIndex, m.EntropySpread, m.ConservedDelta, m.Balance,
		m.Budget, m.Risk, m.ProbeCount, m.BasinCount, m.EventCount,
	); err != nil {
		return fmt.Errorf("insert metrics tick %d: %w", m.Tick, err)
	}

	for _, e := range snap.Registry {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO registry
			(id, birth_tick, death_tick, peak_strength, kills, territory_wins)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.BirthTick, e.DeathTick, e.PeakStrength, e.Kills, e.TerritoryWins,
		); err != nil {
			return fmt.Errorf("insert registry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// MetricsTrace returns the recorded metrics ticks in order, for inspection
// tooling.
func (a *Archive) MetricsTrace() ([]uint64, error) {
	var ticks []uint64
	err := a.conn.Select(&ticks, "SELECT tick FROM metrics ORDER BY tick")
	return ticks, err
}
