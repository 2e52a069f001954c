package visualization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

const testEpsilon = 1e-9

func reconstruct(t *testing.T, confID string, theta, delta float64) ring.RingGeometry {
	t.Helper()
	conf, err := ring.ParseConformation(confID)
	require.NoError(t, err)
	geom, err := ring.Walk(conf, theta, delta)
	require.NoError(t, err)
	return geom
}

func TestBuildScene_TrigonalRing(t *testing.T) {
	geom := reconstruct(t, "RLRLRL", 0, 60)

	scene, err := BuildScene(&SceneInput{
		Name:         "syn-T-1",
		Conformation: "RLFFRLFFRLFF",
		Theta:        0,
		Delta:        60,
		RunID:        "run-1",
		Geometry:     geom,
	})
	require.NoError(t, err)

	assert.Equal(t, "syn-T-1", scene.Name)
	assert.Equal(t, "RLFFRLFFRLFF", scene.Conformation)
	assert.Equal(t, "run-1", scene.RunID)

	require.Len(t, scene.Metals, 3)
	assert.Equal(t, "1", scene.Metals[0].Label)
	assert.Equal(t, "2", scene.Metals[1].Label)
	assert.Equal(t, "3", scene.Metals[2].Label)
	for i, m := range scene.Metals {
		assert.Equal(t, geom.Metals[i], m.Position)
	}

	require.Len(t, scene.Backbones, 3)
	for _, b := range scene.Backbones {
		assert.Equal(t, "RL", b.Ligand)
		require.Len(t, b.Fragments, 2)
		for _, frag := range b.Fragments {
			assert.Len(t, frag, 3)
		}
	}

	assert.Equal(t, [3]float64{1, 1, 1}, scene.BoxAspect)
}

func TestBuildScene_AxisLimitCoversAllPoints(t *testing.T) {
	geom := reconstruct(t, "RLRLRL", 0, 60)

	scene, err := BuildScene(&SceneInput{Geometry: geom})
	require.NoError(t, err)

	// The widest coordinate of this ring is the second metal's y = √3; the
	// limit pads it by the fixed margin.
	assert.InDelta(t, math.Sqrt(3)+axisMargin, scene.AxisLimit, testEpsilon)

	for _, p := range geom.AllPoints() {
		assert.LessOrEqual(t, math.Abs(p.X), scene.AxisLimit)
		assert.LessOrEqual(t, math.Abs(p.Y), scene.AxisLimit)
		assert.LessOrEqual(t, math.Abs(p.Z), scene.AxisLimit)
	}
}

func TestBuildScene_MixedLigandTokens(t *testing.T) {
	geom := reconstruct(t, "RRFFLLBB", 30, 103)

	scene, err := BuildScene(&SceneInput{Geometry: geom})
	require.NoError(t, err)

	require.Len(t, scene.Backbones, 2)
	assert.Equal(t, "RR", scene.Backbones[0].Ligand)
	assert.Equal(t, "LL", scene.Backbones[1].Ligand)
}

func TestBuildScene_InputErrors(t *testing.T) {
	_, err := BuildScene(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = BuildScene(&SceneInput{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
