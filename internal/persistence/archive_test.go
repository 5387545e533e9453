package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/fieldsim/internal/engine"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func runSnapshots(t *testing.T, ticks uint64) []engine.Snapshot {
	t.Helper()
	p := engine.Full()
	w := engine.NewWorld(engine.DefaultConfig(42), p)
	r := engine.NewRunner(w, p, 1.0/30.0)
	r.SnapshotEvery = 10

	var snaps []engine.Snapshot
	r.OnSnapshot = func(s engine.Snapshot) { snaps = append(snaps, s) }
	r.RunTicks(ticks)
	return snaps
}

func TestRecordAndTrace(t *testing.T) {
	a := openTestArchive(t)

	snaps := runSnapshots(t, 30)
	if len(snaps) != 3 {
		t.Fatalf("snapshots = %d, want 3", len(snaps))
	}
	for _, s := range snaps {
		if err := a.Record(s); err != nil {
			t.Fatalf("record tick %d: %v", s.Tick, err)
		}
	}

	ticks, err := a.MetricsTrace()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	want := []uint64{10, 20, 30}
	if len(ticks) != len(want) {
		t.Fatalf("trace = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("trace = %v, want %v", ticks, want)
		}
	}
}

func TestRecordIsIdempotentPerTick(t *testing.T) {
	a := openTestArchive(t)

	snaps := runSnapshots(t, 10)
	if err := a.Record(snaps[0]); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := a.Record(snaps[0]); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	ticks, err := a.MetricsTrace()
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if len(ticks) != 1 || ticks[0] != 10 {
		t.Fatalf("trace = %v, want exactly [10]", ticks)
	}
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.db")

	a, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	a.Close()

	// Reopening an existing archive must not fail on the schema.
	b, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer b.Close()

	if _, err := b.MetricsTrace(); err != nil {
		t.Fatalf("trace on reopened archive: %v", err)
	}
}
