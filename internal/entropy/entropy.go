// Package entropy provides the deterministic noise source for the simulation.
// Every random-looking quantity in the engine is a pure function of
// (seed, tick, salt) — never a wall clock, never a shared mutable generator —
// so that a run replays bit-identically from its seed.
package entropy

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Unit returns a float64 in [0, 1) derived from (seed, tick, salt).
// The same inputs always produce the same output.
func Unit(seed int64, tick uint64, salt string) float64 {
	h := fnv.New64a()

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:16], tick)
	h.Write(buf[:])
	h.Write([]byte(salt))

	// Use only 53 bits for a uniform float64 in [0, 1).
	n := h.Sum64() >> 11
	return float64(n) / float64(1<<53)
}

// Range returns a float64 in [lo, hi) derived from (seed, tick, salt).
func Range(seed int64, tick uint64, salt string, lo, hi float64) float64 {
	return lo + Unit(seed, tick, salt)*(hi-lo)
}

// Index returns an integer in [0, n) derived from (seed, tick, salt).
// n must be positive.
func Index(seed int64, tick uint64, salt string, n int) int {
	return int(Unit(seed, tick, salt) * float64(n))
}

// Angle returns an angle in [0, 2π) derived from (seed, tick, salt).
func Angle(seed int64, tick uint64, salt string) float64 {
	return Unit(seed, tick, salt) * 2 * math.Pi
}
