package geometry

import "math"

// Rotation is a proper rotation of 3-space, stored as a 3×3 matrix in
// row-major order acting on column vectors: world = R · local.
//
// Rotations are composed with the explicit named Compose operation rather
// than an operator, and the composition order is significant (see Compose).
type Rotation [3][3]float64

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotX returns the rotation about the x-axis by deg degrees:
//
//	| 1    0       0    |
//	| 0  cos a  −sin a  |
//	| 0  sin a   cos a  |
func RotX(deg float64) Rotation {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Rotation{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotZ returns the rotation about the z-axis by deg degrees:
//
//	| cos a  −sin a  0 |
//	| sin a   cos a  0 |
//	|   0       0    1 |
func RotZ(deg float64) Rotation {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Rotation{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Compose returns the rotation that applies s first and then r, i.e. the
// matrix product r·s.  The defining identity is
//
//	r.Compose(s).Apply(v) == r.Apply(s.Apply(v))
//
// so chaining a.Compose(b).Compose(c) applies c, then b, then a — reading a
// left-to-right chain as successive rotations expressed in the local frame
// established by the rotations to its left.  Composition is not commutative;
// the ligand frame chain depends on this order being preserved exactly.
func (r Rotation) Compose(s Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[i][0]*s[0][j] + r[i][1]*s[1][j] + r[i][2]*s[2][j]
		}
	}
	return out
}

// Apply rotates v, returning R · v.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Frame is a local coordinate system: an origin position and an orientation.
// The ring walker chains frames, each ligand's output frame becoming the next
// ligand's input frame after the bridge transform.
type Frame struct {
	Origin      Vec3
	Orientation Rotation
}

// OriginFrame returns the frame at the world origin with identity orientation,
// the starting state of every ring walk.
func OriginFrame() Frame {
	return Frame{Orientation: Identity()}
}

// ToAbsolute maps a point expressed in the frame's local coordinates into
// absolute coordinates.
func (f Frame) ToAbsolute(local Vec3) Vec3 {
	return f.Origin.Add(f.Orientation.Apply(local))
}
