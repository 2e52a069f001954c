package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// gridEpsilon absorbs float accumulation error when deciding whether the end
// of the theta range is itself a grid point.
const gridEpsilon = 1e-9

// thetaGrid expands an inclusive [start, end] range with the given step into
// explicit sample values.  Both bounds must lie in [0, 90] with start ≤ end
// and step > 0.
func thetaGrid(start, end, step float64) ([]float64, error) {
	switch {
	case math.IsNaN(start) || start < 0 || start > 90:
		return nil, errors.New(errors.CodeThetaGridInvalid,
			fmt.Sprintf("theta start %v is outside [0, 90]", start))
	case math.IsNaN(end) || end < 0 || end > 90:
		return nil, errors.New(errors.CodeThetaGridInvalid,
			fmt.Sprintf("theta end %v is outside [0, 90]", end))
	case start > end:
		return nil, errors.New(errors.CodeThetaGridInvalid,
			fmt.Sprintf("theta start %v exceeds theta end %v", start, end))
	case math.IsNaN(step) || step <= 0:
		return nil, errors.New(errors.CodeThetaGridInvalid,
			fmt.Sprintf("theta step must be > 0, got %v", step))
	}

	n := int(math.Floor((end-start)/step+gridEpsilon)) + 1
	thetas := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if v > 90 {
			// Accumulated rounding may push the last sample past the domain
			// edge; clamp it back.
			v = 90
		}
		thetas = append(thetas, v)
	}
	return thetas, nil
}

// resolveWorkers maps the configured worker count to an effective pool size.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func (s *serviceImpl) Sweep(ctx context.Context, input *SweepInput) (*SweepResult, error) {
	if input == nil {
		return nil, errors.InvalidArgument("sweep input must not be nil")
	}

	conf, name, err := s.resolve(input.Ring, input.Conformation)
	if err != nil {
		return nil, err
	}

	thetas, err := thetaGrid(input.ThetaStart, input.ThetaEnd, input.ThetaStep)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := s.logger.WithContext(ctx)

	workers := resolveWorkers(input.Workers)
	log.Info("starting theta sweep",
		logging.String(logging.FieldConformation, conf.String()),
		logging.Float64(logging.FieldDelta, input.Delta),
		logging.Int("points", len(thetas)),
		logging.Int("workers", workers),
	)

	start := time.Now()
	points, err := computePoints(ctx, conf, thetas, input.Delta, workers)
	if err != nil {
		log.WithError(err).Error("theta sweep failed")
		return nil, err
	}
	elapsed := time.Since(start)

	minIdx := 0
	for i, p := range points {
		if p.RSU < points[minIdx].RSU {
			minIdx = i
		}
	}

	result := &SweepResult{
		RunID:        runID,
		Name:         name,
		Conformation: conf.String(),
		Units:        conf.Len(),
		Delta:        input.Delta,
		Points:       points,
		MinTheta:     points[minIdx].Theta,
		MinRSU:       points[minIdx].RSU,
		ElapsedMs:    float64(elapsed.Microseconds()) / 1000.0,
	}

	log.Info("theta sweep completed",
		logging.Int("points", len(points)),
		logging.Float64("min_theta", result.MinTheta),
		logging.Float64("min_rsu", result.MinRSU),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

// computePoints evaluates the RSU score at every theta using a bounded worker
// pool.  Points come back in grid order; the first failure (by grid index)
// wins, and a canceled context surfaces as CodeSweepCanceled.
func computePoints(ctx context.Context, conf ring.Conformation, thetas []float64, delta float64, workers int) ([]Point, error) {
	type indexed struct {
		idx int
		pt  Point
		err error
	}

	n := len(thetas)
	sem := make(chan struct{}, workers)
	resultCh := make(chan indexed, n)

	var wg sync.WaitGroup
	for i, theta := range thetas {
		wg.Add(1)
		go func(idx int, theta float64) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultCh <- indexed{idx: idx, err: ctx.Err()}
				return
			}
			if err := ctx.Err(); err != nil {
				resultCh <- indexed{idx: idx, err: err}
				return
			}

			score, err := ring.RSU(conf, theta, delta)
			resultCh <- indexed{idx: idx, pt: Point{Theta: theta, RSU: score}, err: err}
		}(i, theta)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	points := make([]Point, n)
	errs := make([]error, n)
	for r := range resultCh {
		points[r.idx] = r.pt
		errs[r.idx] = r.err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeSweepCanceled, "sweep canceled before completion")
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
