package geometry

import "math"

// TransposeXYZ reshapes a point sequence into three per-axis slices, the
// layout 3-D plotting collaborators consume (xs, ys, zs).  The returned
// slices are empty, never nil, for an empty input.
func TransposeXYZ(points []Vec3) (xs, ys, zs []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	zs = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		zs[i] = p.Z
	}
	return xs, ys, zs
}

// SymmetricAxisLimit returns the half-width L of the smallest origin-centered
// cube containing all points, plus margin.  A plotting collaborator applies
// [−L, +L] to all three axes with a cubic box aspect so rings render without
// distortion.  Zero points yield margin alone.
func SymmetricAxisLimit(points []Vec3, margin float64) float64 {
	var limit float64
	for _, p := range points {
		for _, c := range [3]float64{p.X, p.Y, p.Z} {
			if abs := math.Abs(c); abs > limit {
				limit = abs
			}
		}
	}
	return limit + margin
}
