// Package ring implements the geometric reconstruction engine for cyclic
// metal–ligand assemblies: the ligand frame solver, the ring walker, and the
// RSU (Ring Strain per Unit) metric.
//
// A ring is described symbolically by a conformation string of 2-character
// tokens.  Ligand tokens (RR, RL, LR, LL) encode the handedness of the two
// bond rotations inside one ligand; bridge tokens (FF, FB, BF, BB) describe
// the metal bridges between ligands and are folded into a single fixed
// delta-parameterized transform.  Given a conformation and the two angle
// parameters theta and delta, the engine chains local coordinate frames
// around the ring and reconstructs absolute 3-D positions for every metal
// center and backbone atom.
package ring

import (
	"fmt"
	"math"

	"github.com/turtacn/RSU-Analyzer/internal/domain/geometry"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Ligand and bridge token types
// ─────────────────────────────────────────────────────────────────────────────

// LigandType encodes the handedness of the two consecutive bond rotations
// within one ligand: the first letter for the A-side arm, the second for the
// C-side arm, R for clockwise and L for counterclockwise.
type LigandType string

const (
	LigandRR LigandType = "RR"
	LigandRL LigandType = "RL"
	LigandLR LigandType = "LR"
	LigandLL LigandType = "LL"
)

// IsValid reports whether lt is one of the four defined ligand types.
func (lt LigandType) IsValid() bool {
	switch lt {
	case LigandRR, LigandRL, LigandLR, LigandLL:
		return true
	}
	return false
}

func (lt LigandType) String() string {
	return string(lt)
}

// Signs maps the ligand type to its rotation-sign pair (j, k):
//
//	RR → (+1, +1)   RL → (+1, −1)   LR → (−1, +1)   LL → (−1, −1)
//
// j drives the A-side tilt and the fixed bond-angle step, k the C-side tilt.
// The result is meaningful only for valid ligand types; invalid types yield
// (0, 0) and are rejected by the solver before Signs is consulted.
func (lt LigandType) Signs() (j, k int) {
	switch lt {
	case LigandRR:
		return +1, +1
	case LigandRL:
		return +1, -1
	case LigandLR:
		return -1, +1
	case LigandLL:
		return -1, -1
	}
	return 0, 0
}

// ParseLigandType validates and converts a 2-character token.
func ParseLigandType(s string) (LigandType, error) {
	lt := LigandType(s)
	if !lt.IsValid() {
		return "", errors.New(errors.CodeLigandTypeInvalid,
			fmt.Sprintf("invalid ligand type %q (want RR, RL, LR or LL)", s))
	}
	return lt, nil
}

// BridgeType encodes the facing of the two ligand ends meeting at a metal
// bridge: F for front, B for back.  Bridge tokens are validated during
// parsing but carry no independent geometry — the bridge joint is the single
// fixed delta rotation applied between consecutive ligand frames.
type BridgeType string

const (
	BridgeFF BridgeType = "FF"
	BridgeFB BridgeType = "FB"
	BridgeBF BridgeType = "BF"
	BridgeBB BridgeType = "BB"
)

// IsValid reports whether bt is one of the four defined bridge types.
func (bt BridgeType) IsValid() bool {
	switch bt {
	case BridgeFF, BridgeFB, BridgeBF, BridgeBB:
		return true
	}
	return false
}

func (bt BridgeType) String() string {
	return string(bt)
}

// ─────────────────────────────────────────────────────────────────────────────
// Ligand frame solver
// ─────────────────────────────────────────────────────────────────────────────

// bondStepDeg is the fixed in-plane bond angle between the two arms of a
// ligand, applied with the sign j of the ligand type.
const bondStepDeg = 60.0

// ligandChain holds the named intermediate vectors and rotations of the
// four-step local chain A → B1 → B2 → C1 → C2.  All fields are expressed in
// frame A and are always present.
type ligandChain struct {
	xAB     geometry.Vec3 // A→B displacement
	xBC     geometry.Vec3 // B→C displacement
	rotAB1  geometry.Rotation
	rotB1B2 geometry.Rotation
	rotB2C1 geometry.Rotation
	rotC1C2 geometry.Rotation
}

// displacement returns the total A→C displacement in frame A.
func (c ligandChain) displacement() geometry.Vec3 {
	return c.xAB.Add(c.xBC)
}

// rotation returns the net frame rotation
// rotAB1 ∘ rotB1B2 ∘ rotB2C1 ∘ rotC1C2, composed in exactly that order.
func (c ligandChain) rotation() geometry.Rotation {
	return c.rotAB1.Compose(c.rotB1B2).Compose(c.rotB2C1).Compose(c.rotC1C2)
}

// validateTheta enforces the inclusive tilt-angle range [0, 90] degrees.
func validateTheta(theta float64) error {
	if math.IsNaN(theta) || theta < 0 || theta > 90 {
		return errors.New(errors.CodeThetaOutOfRange,
			fmt.Sprintf("theta %v outside [0, 90] degrees", theta))
	}
	return nil
}

// innerChain builds the four-step sub-rotation chain for one ligand:
//
//	1. fixed unit displacement x̂ from A to B
//	2. rotAB1  = RotX(j·theta)
//	3. rotB1B2 = RotZ(j·60)
//	4. x_bc    = (rotAB1 ∘ rotB1B2) · x̂
//	5. rotB2C1 = RotX(k·theta)
//	6. rotC1C2 = RotX(180) for same-handed pairs (RR, LL), else identity
//
// Step 6 re-orients the outgoing frame's normal to the canonical
// front-facing convention so consecutive ligand frames compose consistently
// around the ring.
func innerChain(lt LigandType, theta float64) (ligandChain, error) {
	if !lt.IsValid() {
		return ligandChain{}, errors.New(errors.CodeLigandTypeInvalid,
			fmt.Sprintf("invalid ligand type %q (want RR, RL, LR or LL)", string(lt)))
	}
	if err := validateTheta(theta); err != nil {
		return ligandChain{}, err
	}

	j, k := lt.Signs()

	rotAB1 := geometry.RotX(float64(j) * theta)
	rotB1B2 := geometry.RotZ(float64(j) * bondStepDeg)
	rotB2C1 := geometry.RotX(float64(k) * theta)

	rotC1C2 := geometry.Identity()
	if lt == LigandRR || lt == LigandLL {
		rotC1C2 = geometry.RotX(180)
	}

	return ligandChain{
		xAB:     geometry.UnitX(),
		xBC:     rotAB1.Compose(rotB1B2).Apply(geometry.UnitX()),
		rotAB1:  rotAB1,
		rotB1B2: rotB1B2,
		rotB2C1: rotB2C1,
		rotC1C2: rotC1C2,
	}, nil
}

// LigandEnd is the solved output of one ligand: the displacement from the
// incoming metal-adjacent frame to the outgoing one, and the net rotation
// carrying the incoming frame onto the outgoing frame.  Both are expressed
// in the incoming frame.
type LigandEnd struct {
	Displacement geometry.Vec3
	Rotation     geometry.Rotation
}

// SolveLigand computes the local displacement and net rotation of one ligand
// at tilt angle theta.  It fails with an InvalidArgument-class error for an
// unknown ligand type or theta outside [0, 90] degrees; both bounds are
// inclusive.
//
// The displacement magnitude is the constant √3 for every ligand type and
// every valid theta: the two unit arms always meet at the fixed 60° bond
// step, so |x̂ + x_bc|² = 2 + 2·cos 60° = 3.
func SolveLigand(lt LigandType, theta float64) (LigandEnd, error) {
	chain, err := innerChain(lt, theta)
	if err != nil {
		return LigandEnd{}, err
	}
	return LigandEnd{
		Displacement: chain.displacement(),
		Rotation:     chain.rotation(),
	}, nil
}
