// Package field provides the scalar substrate of the world: a density
// function built from gaussian wells around the living entities, and a
// time-varying energy landscape that probes descend. Both are closed-form in
// (position, time, seed); gradients come from central finite differences.
package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/fieldsim/internal/vec"
)

// Landscape shape parameters. The bowl keeps everything bounded, the ripple
// carves ring-shaped valleys where probes pool, and the turbulence octaves
// break the radial symmetry into discrete settling spots.
const (
	bowlGain     = 0.35
	rippleAmp    = 0.40
	rippleFreq   = 4.8  // radians per unit radius
	rippleDrift  = 0.05 // ring phase drift per unit time
	turbAmp      = 0.30
	turbScale    = 1.1
	turbTimeRate = 0.12 // how fast the turbulence layer evolves with time

	gradStep = 1e-3
)

// Source is one gaussian contribution to the density field.
type Source struct {
	Pos      vec.V2
	Strength float64
	Sigma    float64
}

// Field evaluates density and energy over the plane. It is deterministic for
// a fixed seed: the turbulence noise is constructed once from the seed and
// queried as a pure function of (x, y, t).
type Field struct {
	seed    int64
	noise   opensimplex.Noise
	sources []Source
}

// New creates a field seeded for deterministic turbulence.
func New(seed int64) *Field {
	return &Field{
		seed:  seed,
		noise: opensimplex.NewNormalized(seed),
	}
}

// SetSources replaces the density well list. The engine refreshes this every
// tick from the anchor and dynamic entity positions.
func (f *Field) SetSources(s []Source) {
	f.sources = f.sources[:0]
	f.sources = append(f.sources, s...)
}

// Density returns the summed gaussian wells at p.
func (f *Field) Density(p vec.V2) float64 {
	total := 0.0
	for _, s := range f.sources {
		d2 := p.Sub(s.Pos).LenSq()
		sig2 := s.Sigma * s.Sigma
		if sig2 <= 0 {
			continue
		}
		total += s.Strength * math.Exp(-d2/sig2)
	}
	return total
}

// Energy returns the landscape value at p for world time t.
func (f *Field) Energy(p vec.V2, t float64) float64 {
	r := p.Len()
	bowl := bowlGain * r * r
	ripple := rippleAmp * math.Cos(rippleFreq*r-rippleDrift*t)
	turb := turbAmp * (f.octave(p.X*turbScale, p.Y*turbScale, t*turbTimeRate, 3, 0.5) - 0.5)
	return bowl + ripple + turb
}

// GradDensity returns the finite-difference gradient of the density at p.
func (f *Field) GradDensity(p vec.V2) vec.V2 {
	return vec.V2{
		X: (f.Density(vec.V2{X: p.X + gradStep, Y: p.Y}) - f.Density(vec.V2{X: p.X - gradStep, Y: p.Y})) / (2 * gradStep),
		Y: (f.Density(vec.V2{X: p.X, Y: p.Y + gradStep}) - f.Density(vec.V2{X: p.X, Y: p.Y - gradStep})) / (2 * gradStep),
	}
}

// GradEnergy returns the finite-difference gradient of the energy at p.
func (f *Field) GradEnergy(p vec.V2, t float64) vec.V2 {
	return vec.V2{
		X: (f.Energy(vec.V2{X: p.X + gradStep, Y: p.Y}, t) - f.Energy(vec.V2{X: p.X - gradStep, Y: p.Y}, t)) / (2 * gradStep),
		Y: (f.Energy(vec.V2{X: p.X, Y: p.Y + gradStep}, t) - f.Energy(vec.V2{X: p.X, Y: p.Y - gradStep}, t)) / (2 * gradStep),
	}
}

// octave layers multiple noise frequencies, like fractal terrain generation.
func (f *Field) octave(x, y, z float64, octaves int, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := 1.0

	for i := 0; i < octaves; i++ {
		total += f.noise.Eval3(x*freq, y*freq, z*freq) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		freq *= 2
	}

	return total / maxVal
}
