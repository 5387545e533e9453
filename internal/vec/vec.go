// Package vec provides the 2-vector value type used throughout the engine.
package vec

import "math"

// V2 is a 2D vector. Value semantics — every operation returns a new vector.
type V2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v V2) Add(o V2) V2 { return V2{v.X + o.X, v.Y + o.Y} }

// Sub returns v − o.
func (v V2) Sub(o V2) V2 { return V2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v V2) Scale(s float64) V2 { return V2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v V2) Dot(o V2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the euclidean length of v.
func (v V2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq returns the squared length of v.
func (v V2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Dist returns the distance between v and o.
func (v V2) Dist(o V2) float64 { return v.Sub(o).Len() }

// Norm returns v scaled to unit length, or the zero vector if v is zero.
func (v V2) Norm() V2 {
	l := v.Len()
	if l == 0 {
		return V2{}
	}
	return v.Scale(1 / l)
}

// Perp returns v rotated 90° counter-clockwise.
func (v V2) Perp() V2 { return V2{-v.Y, v.X} }

// ClampLen returns v with its length capped at max.
func (v V2) ClampLen(max float64) V2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Finite reports whether both components are finite.
func (v V2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// FromAngle returns the unit vector at the given angle in radians.
func FromAngle(a float64) V2 { return V2{math.Cos(a), math.Sin(a)} }

// Lerp returns v blended toward o by t (t=0 keeps v, t=1 reaches o).
func Lerp(v, o V2, t float64) V2 {
	return V2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}
