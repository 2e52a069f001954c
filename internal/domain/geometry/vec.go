// Package geometry provides the 3-D primitives used by the ring reconstruction
// engine: vectors, rotations, local coordinate frames, and the small set of
// reshaping helpers consumed by external plotting collaborators.
//
// Everything in this package is a pure value: no entity here is mutated after
// construction, and every operation is a deterministic closed-form mapping
// from inputs to outputs.
package geometry

import "math"

// Vec3 is a 3-component vector in Cartesian coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// UnitX is the unit vector along the local x-axis, the fixed bond direction
// used throughout the ligand frame chain.
func UnitX() Vec3 {
	return Vec3{X: 1}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns v − w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the scalar product v · w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean length |v|.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsFinite reports whether all three components are finite (no NaN, no ±Inf).
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Lerp returns the linear interpolation between a and b at parameter t,
// with t=0 yielding a and t=1 yielding b.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
