package ring

import (
	"github.com/turtacn/RSU-Analyzer/internal/domain/geometry"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// RSU reduces a conformation's reconstructed metal positions to the Ring
// Strain per Unit scalar: the distance from the chain end back to the origin
// seam, divided by the number of ligand units.
//
//	RSU = |chain end − origin| / N
//
// A perfectly closing ring returns exactly to its seam and scores 0; the
// score is non-negative everywhere and grows as the conformation deviates
// from closure.  Normalizing by N keeps scores comparable across ring sizes.
//
// The reconstruction is restricted to frame positions — backbone fragments
// are never sampled on this path.
func RSU(conf Conformation, theta, delta float64) (float64, error) {
	end, err := chainEnd(conf, theta, delta)
	if err != nil {
		return 0, err
	}
	return end.Norm() / float64(conf.Len()), nil
}

// CalcRSU parses confID and evaluates RSU at (theta, delta).  It is the
// string-level entry point used by the analysis sweep and the CLI.
func CalcRSU(confID string, theta, delta float64) (float64, error) {
	conf, err := ParseConformation(confID)
	if err != nil {
		return 0, err
	}
	return RSU(conf, theta, delta)
}

// chainEnd walks the frame chain recording positions only and returns the
// final frame origin.  It mirrors Walk's frame advancement exactly; the
// walker tests cross-check that the two paths agree.
func chainEnd(conf Conformation, theta, delta float64) (geometry.Vec3, error) {
	if conf.Len() == 0 {
		return geometry.Vec3{}, errors.New(errors.CodeConformationEmpty,
			"conformation contains no ligand units")
	}
	if err := validateTheta(theta); err != nil {
		return geometry.Vec3{}, err
	}

	frame := geometry.OriginFrame()
	bridgeRot := geometry.RotZ(delta)

	for _, u := range conf.Units {
		chain, err := innerChain(u.Ligand, theta)
		if err != nil {
			return geometry.Vec3{}, err
		}
		frame = geometry.Frame{
			Origin:      frame.ToAbsolute(chain.displacement()),
			Orientation: frame.Orientation.Compose(chain.rotation()).Compose(bridgeRot),
		}
	}

	return frame.Origin, nil
}
