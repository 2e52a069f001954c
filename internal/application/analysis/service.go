// Package analysis provides the application-level service for ring strain
// computation.  It sits between the CLI and the domain ring engine: inputs
// arrive as plain strings and numbers, are validated eagerly, and come back
// as result DTOs ready for export.
package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// Service defines the interface for ring analysis operations.
type Service interface {
	// Sweep computes the RSU score over an inclusive theta grid.
	Sweep(ctx context.Context, input *SweepInput) (*SweepResult, error)

	// Evaluate computes the RSU score for a single theta.
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateResult, error)

	// Reconstruct walks the full 3-D geometry of a conformation at a single
	// theta, for rendering and inspection.
	Reconstruct(ctx context.Context, input *ReconstructInput) (*ReconstructResult, error)
}

// SweepInput contains input for a theta sweep.  Exactly one of Ring (a
// catalog name) or Conformation (a raw conformation string) must be set.
type SweepInput struct {
	Ring         string
	Conformation string

	ThetaStart float64
	ThetaEnd   float64
	ThetaStep  float64
	Delta      float64

	// Workers caps concurrent evaluations; 0 selects one per logical CPU.
	Workers int
}

// EvaluateInput contains input for a single-point evaluation.
type EvaluateInput struct {
	Ring         string
	Conformation string
	Theta        float64
	Delta        float64
}

// ReconstructInput contains input for a geometry reconstruction.
type ReconstructInput struct {
	Ring         string
	Conformation string
	Theta        float64
	Delta        float64
}

// Point is one sweep sample.
type Point struct {
	Theta float64 `json:"theta"`
	RSU   float64 `json:"rsu"`
}

// SweepResult aggregates a completed sweep.
type SweepResult struct {
	RunID        string  `json:"run_id"`
	Name         string  `json:"name"`
	Conformation string  `json:"conformation"`
	Units        int     `json:"units"`
	Delta        float64 `json:"delta"`
	Points       []Point `json:"points"`

	// MinTheta/MinRSU locate the best-closing sample; ties resolve to the
	// smallest theta.
	MinTheta float64 `json:"min_theta"`
	MinRSU   float64 `json:"min_rsu"`

	ElapsedMs float64 `json:"elapsed_ms"`
}

// EvaluateResult is the outcome of a single-point evaluation.
type EvaluateResult struct {
	RunID        string  `json:"run_id"`
	Name         string  `json:"name"`
	Conformation string  `json:"conformation"`
	Units        int     `json:"units"`
	Theta        float64 `json:"theta"`
	Delta        float64 `json:"delta"`
	RSU          float64 `json:"rsu"`
	ClosureGap   float64 `json:"closure_gap"`
}

// ReconstructResult carries the reconstructed geometry plus run metadata.
// The geometry itself is handed to the visualization layer rather than
// serialized directly.
type ReconstructResult struct {
	RunID        string  `json:"run_id"`
	Name         string  `json:"name"`
	Conformation string  `json:"conformation"`
	Units        int     `json:"units"`
	Theta        float64 `json:"theta"`
	Delta        float64 `json:"delta"`

	Geometry ring.RingGeometry `json:"-"`
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	catalog ring.Catalog
	logger  logging.Logger
}

// NewService creates a new analysis service.  The catalog supplies named
// rings (built-ins plus any user extensions); logger must not be nil.
func NewService(catalog ring.Catalog, logger logging.Logger) Service {
	if catalog == nil {
		catalog = ring.DefaultCatalog()
	}
	return &serviceImpl{
		catalog: catalog,
		logger:  logger,
	}
}

// resolve turns a (ring, conformation) input pair into a parsed Conformation
// and a display name.  Exactly one of the two must be set.
func (s *serviceImpl) resolve(ringName, conformation string) (ring.Conformation, string, error) {
	switch {
	case ringName == "" && conformation == "":
		return ring.Conformation{}, "", errors.New(errors.CodeSweepInputMissing,
			"either a ring name or a conformation string is required")
	case ringName != "" && conformation != "":
		return ring.Conformation{}, "", errors.InvalidArgument(
			"ring name and conformation string are mutually exclusive")
	case ringName != "":
		conf, err := s.catalog.Resolve(ringName)
		if err != nil {
			return ring.Conformation{}, "", err
		}
		return conf, ringName, nil
	default:
		conf, err := ring.ParseConformation(conformation)
		if err != nil {
			return ring.Conformation{}, "", err
		}
		return conf, conf.String(), nil
	}
}

func (s *serviceImpl) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("evaluate input must not be nil")
	}

	conf, name, err := s.resolve(input.Ring, input.Conformation)
	if err != nil {
		return nil, err
	}

	score, err := ring.RSU(conf, input.Theta, input.Delta)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	s.logger.WithContext(logging.WithRunID(ctx, runID)).Debug("evaluated conformation",
		logging.String(logging.FieldConformation, conf.String()),
		logging.Float64(logging.FieldTheta, input.Theta),
		logging.Float64(logging.FieldDelta, input.Delta),
		logging.Float64("rsu", score),
	)

	return &EvaluateResult{
		RunID:        runID,
		Name:         name,
		Conformation: conf.String(),
		Units:        conf.Len(),
		Theta:        input.Theta,
		Delta:        input.Delta,
		RSU:          score,
		ClosureGap:   score * float64(conf.Len()),
	}, nil
}

func (s *serviceImpl) Reconstruct(ctx context.Context, input *ReconstructInput) (*ReconstructResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("reconstruct input must not be nil")
	}

	conf, name, err := s.resolve(input.Ring, input.Conformation)
	if err != nil {
		return nil, err
	}

	geom, err := ring.Walk(conf, input.Theta, input.Delta)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	s.logger.WithContext(logging.WithRunID(ctx, runID)).Debug("reconstructed geometry",
		logging.String(logging.FieldConformation, conf.String()),
		logging.Float64(logging.FieldTheta, input.Theta),
		logging.Float64(logging.FieldDelta, input.Delta),
		logging.Int("metals", len(geom.Metals)),
	)

	return &ReconstructResult{
		RunID:        runID,
		Name:         name,
		Conformation: conf.String(),
		Units:        conf.Len(),
		Theta:        input.Theta,
		Delta:        input.Delta,
		Geometry:     geom,
	}, nil
}
