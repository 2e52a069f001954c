// Package visualization turns reconstructed ring geometry into a renderable
// scene description: labeled metal centers, backbone polylines, and cubic
// axis bounds.  The scene is plain data — rendering itself is left to
// whatever consumes the exported JSON.
package visualization

import (
	"strconv"

	"github.com/turtacn/RSU-Analyzer/internal/domain/geometry"
	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// axisMargin pads the symmetric axis limit so the outermost point never sits
// on the box edge.
const axisMargin = 0.5

// Metal is one labeled metal-center position.  Labels are 1-based walk
// positions.
type Metal struct {
	Label    string        `json:"label"`
	Position geometry.Vec3 `json:"position"`
}

// Backbone is the rendered trace of one ligand: its type token and the
// sampled arm polylines in walk order.
type Backbone struct {
	Ligand    string            `json:"ligand"`
	Fragments [][]geometry.Vec3 `json:"fragments"`
}

// Scene is a complete renderable description of one reconstructed ring.
type Scene struct {
	Name         string  `json:"name"`
	Conformation string  `json:"conformation"`
	Theta        float64 `json:"theta"`
	Delta        float64 `json:"delta"`
	RunID        string  `json:"run_id,omitempty"`

	Metals    []Metal    `json:"metals"`
	Backbones []Backbone `json:"backbones"`

	// AxisLimit is the half-width of the bounding cube: every axis spans
	// [-AxisLimit, AxisLimit] so proportions survive rendering.
	AxisLimit float64    `json:"axis_limit"`
	BoxAspect [3]float64 `json:"box_aspect"`
}

// SceneInput carries the geometry and run metadata a scene is built from.
type SceneInput struct {
	Name         string
	Conformation string
	Theta        float64
	Delta        float64
	RunID        string
	Geometry     ring.RingGeometry
}

// BuildScene assembles a Scene from reconstructed geometry.  Metal labels
// follow walk order starting at 1, matching the unit order of the source
// conformation.
func BuildScene(input *SceneInput) (*Scene, error) {
	if input == nil {
		return nil, errors.InvalidArgument("scene input must not be nil")
	}
	geom := input.Geometry
	if len(geom.Metals) == 0 {
		return nil, errors.InvalidArgument("geometry has no metal centers")
	}

	metals := make([]Metal, len(geom.Metals))
	for i, m := range geom.Metals {
		metals[i] = Metal{Label: strconv.Itoa(i + 1), Position: m}
	}

	backbones := make([]Backbone, len(geom.Ligands))
	for i, trace := range geom.Ligands {
		backbones[i] = Backbone{
			Ligand:    string(trace.Type),
			Fragments: trace.Fragments,
		}
	}

	return &Scene{
		Name:         input.Name,
		Conformation: input.Conformation,
		Theta:        input.Theta,
		Delta:        input.Delta,
		RunID:        input.RunID,
		Metals:       metals,
		Backbones:    backbones,
		AxisLimit:    geometry.SymmetricAxisLimit(geom.AllPoints(), axisMargin),
		BoxAspect:    [3]float64{1, 1, 1},
	}, nil
}
