package ring

import (
	"github.com/turtacn/RSU-Analyzer/internal/domain/geometry"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// armSamples is the number of backbone sample points per ligand arm,
// endpoints included.
const armSamples = 3

// LigandTrace is the rendered backbone of one ligand: its type and the
// ordered polylines (fragments) of sampled backbone points in absolute
// coordinates.  The fragments give plotting collaborators a general
// impression of the backbone, not exact atom positions.
type LigandTrace struct {
	Type      LigandType
	Fragments [][]geometry.Vec3
}

// RingGeometry is the output of a ring walk: one metal-center position per
// ligand unit, in input order, plus the per-ligand backbone traces.  The
// engine does not enforce closure — a conformation that does not close
// geometrically yields an open chain, and closure is a property of
// correctly-constructed inputs.
type RingGeometry struct {
	Metals  []geometry.Vec3
	Ligands []LigandTrace
}

// ClosureGap returns the distance from the final chain position (the last
// recorded metal) back to the origin seam.  A perfectly closed ring has gap
// 0 within numerical tolerance.
func (g RingGeometry) ClosureGap() float64 {
	if len(g.Metals) == 0 {
		return 0
	}
	return g.Metals[len(g.Metals)-1].Norm()
}

// AllPoints returns every reconstructed point — metals and backbone
// samples — for bounding-box computations.
func (g RingGeometry) AllPoints() []geometry.Vec3 {
	pts := make([]geometry.Vec3, 0, len(g.Metals)*(1+2*armSamples))
	pts = append(pts, g.Metals...)
	for _, lig := range g.Ligands {
		for _, frag := range lig.Fragments {
			pts = append(pts, frag...)
		}
	}
	return pts
}

// Walk reconstructs the absolute geometry of a conformation at tilt angle
// theta and bridge angle delta (both degrees).
//
// A running frame starts at the origin with identity orientation.  For each
// unit, the ligand's local A, B and C positions are mapped through the
// current frame; C is the metal center recorded for this vertex, and the two
// arms A→B and B→C become the ligand's backbone fragments.  The frame then
// advances: its origin moves to C and its orientation composes with the
// ligand's net rotation followed by the fixed bridge rotation RotZ(delta)
// about the front-face normal.
//
// Walk fails fast with an InvalidArgument-class error on an invalid theta,
// an empty conformation, or an invalid ligand type; no partial geometry is
// returned.
func Walk(conf Conformation, theta, delta float64) (RingGeometry, error) {
	if conf.Len() == 0 {
		return RingGeometry{}, errors.New(errors.CodeConformationEmpty,
			"conformation contains no ligand units")
	}
	if err := validateTheta(theta); err != nil {
		return RingGeometry{}, err
	}

	frame := geometry.OriginFrame()
	bridgeRot := geometry.RotZ(delta)

	geom := RingGeometry{
		Metals:  make([]geometry.Vec3, 0, conf.Len()),
		Ligands: make([]LigandTrace, 0, conf.Len()),
	}

	for _, u := range conf.Units {
		chain, err := innerChain(u.Ligand, theta)
		if err != nil {
			return RingGeometry{}, err
		}

		a := frame.Origin
		b := frame.ToAbsolute(chain.xAB)
		c := frame.ToAbsolute(chain.displacement())

		geom.Metals = append(geom.Metals, c)
		geom.Ligands = append(geom.Ligands, LigandTrace{
			Type:      u.Ligand,
			Fragments: [][]geometry.Vec3{sampleArm(a, b), sampleArm(b, c)},
		})

		frame = geometry.Frame{
			Origin:      c,
			Orientation: frame.Orientation.Compose(chain.rotation()).Compose(bridgeRot),
		}
	}

	return geom, nil
}

// sampleArm interpolates one backbone arm into an armSamples-point polyline
// with exact endpoints.
func sampleArm(from, to geometry.Vec3) []geometry.Vec3 {
	pts := make([]geometry.Vec3, armSamples)
	for i := range pts {
		pts[i] = geometry.Lerp(from, to, float64(i)/float64(armSamples-1))
	}
	return pts
}
