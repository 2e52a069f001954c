package ring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

func TestCalcRSU_PerfectRingScoresZero(t *testing.T) {
	// The documented minimum configuration: the trigonal RL ring closes
	// exactly at theta=0, delta=60.
	rsu, err := CalcRSU("RLRLRL", 0, 60)
	require.NoError(t, err)
	assert.InDelta(t, 0, rsu, testEpsilon)
}

func TestCalcRSU_SingleUnitAnchor(t *testing.T) {
	// One unit never returns to the seam: the gap is the ligand
	// displacement itself, |d| = √3, and neither the ligand rotation nor
	// the bridge rotation moves the first vertex.
	for _, delta := range []float64{0, 87, 103} {
		rsu, err := CalcRSU("RR", 0, delta)
		require.NoError(t, err)
		assert.InDelta(t, sqrt3, rsu, testEpsilon, "delta %v", delta)
	}
}

func TestCalcRSU_TwoUnitAnalyticAnchor(t *testing.T) {
	// RR then LL at theta=0, delta=120: the second displacement lands
	// parallel to the first, so the chain ends at (3, 0, 0) and
	// RSU = 3 / 2.
	rsu, err := CalcRSU("RRLL", 0, 120)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, rsu, testEpsilon)
}

func TestCalcRSU_BridgeTokensDoNotAffectGeometry(t *testing.T) {
	// Bridge letters are validated grammar, folded into the fixed delta
	// transform; spelling them out must not change the score.
	withBridges, err := CalcRSU("RRFFLLBB", 0, 120)
	require.NoError(t, err)

	ligandsOnly, err := CalcRSU("RRLL", 0, 120)
	require.NoError(t, err)

	assert.InDelta(t, ligandsOnly, withBridges, testEpsilon)
	assert.InDelta(t, 1.5, withBridges, testEpsilon)
}

func TestCalcRSU_NonNegativeAndFiniteOnGrid(t *testing.T) {
	confIDs := []string{"RLRLRL", "RRFFLLBBRRFFLLBB", "RRLLRLLR"}
	thetas := []float64{0, 15, 45, 90}
	deltas := []float64{60, 87, 103}

	for _, confID := range confIDs {
		for _, theta := range thetas {
			for _, delta := range deltas {
				rsu, err := CalcRSU(confID, theta, delta)
				require.NoError(t, err, "%s theta=%v delta=%v", confID, theta, delta)
				assert.False(t, math.IsNaN(rsu) || math.IsInf(rsu, 0))
				assert.GreaterOrEqual(t, rsu, 0.0,
					"%s theta=%v delta=%v", confID, theta, delta)
			}
		}
	}
}

func TestCalcRSU_EqualsClosureGapPerUnit(t *testing.T) {
	conf := mustParse(t, "RRFFLLBBRRFFLLBB")

	geom, err := Walk(conf, 30, 103)
	require.NoError(t, err)

	rsu, err := CalcRSU("RRFFLLBBRRFFLLBB", 30, 103)
	require.NoError(t, err)

	assert.InDelta(t, geom.ClosureGap()/float64(conf.Len()), rsu, testEpsilon)
}

func TestCalcRSU_Deterministic(t *testing.T) {
	first, err := CalcRSU("RRFFLLBBRRFFLLBB", 41, 103)
	require.NoError(t, err)

	second, err := CalcRSU("RRFFLLBBRRFFLLBB", 41, 103)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalcRSU_InvalidInputs(t *testing.T) {
	cases := []struct {
		name     string
		confID   string
		theta    float64
		wantCode errors.ErrorCode
	}{
		{"malformed conformation", "RX", 10, errors.CodeConformationBadToken},
		{"odd length", "RLR", 10, errors.CodeConformationOddLength},
		{"theta out of range", "RLRL", 91, errors.CodeThetaOutOfRange},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalcRSU(tc.confID, tc.theta, 60)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tc.wantCode))
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestRSU_EmptyConformationRejected(t *testing.T) {
	_, err := RSU(Conformation{}, 0, 60)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConformationEmpty))
}
