// Package config defines all configuration structures for the RSU analyzer.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"math"

	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// AnalysisConfig holds the default sweep parameters.  Every field can be
// overridden per invocation by CLI flags.
type AnalysisConfig struct {
	// ThetaStart and ThetaEnd bound the swept pitch angle in degrees.
	// Both must lie in [0, 90] with ThetaStart ≤ ThetaEnd.
	ThetaStart float64 `mapstructure:"theta_start"`
	ThetaEnd   float64 `mapstructure:"theta_end"`

	// ThetaStep is the sweep increment in degrees; must be > 0.
	ThetaStep float64 `mapstructure:"theta_step"`

	// Delta is the inter-ligand twist in degrees applied at every bridge.
	// Any finite value is accepted; 0 means no twist.
	Delta float64 `mapstructure:"delta"`

	// Workers caps the number of concurrent sweep evaluations.
	// 0 selects one worker per logical CPU.
	Workers int `mapstructure:"workers"`
}

// OutputConfig holds result-export parameters.
type OutputConfig struct {
	// Dir is the directory CSV and JSON artifacts are written into.
	Dir string `mapstructure:"dir"`

	// Format selects the default presentation: "csv" | "json" | "table".
	Format string `mapstructure:"format"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the analyzer.  Every
// component reads its settings from the relevant sub-struct.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`

	// Rings maps user-defined ring names to conformation strings.  Entries
	// extend the built-in catalog and may shadow built-in names.
	Rings map[string]string `mapstructure:"rings"`

	Logging logging.LogConfig `mapstructure:"logging"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Analysis
	if !finite(c.Analysis.ThetaStart) || c.Analysis.ThetaStart < 0 || c.Analysis.ThetaStart > 90 {
		return fmt.Errorf("config: analysis.theta_start %v is out of range [0, 90]", c.Analysis.ThetaStart)
	}
	if !finite(c.Analysis.ThetaEnd) || c.Analysis.ThetaEnd < 0 || c.Analysis.ThetaEnd > 90 {
		return fmt.Errorf("config: analysis.theta_end %v is out of range [0, 90]", c.Analysis.ThetaEnd)
	}
	if c.Analysis.ThetaStart > c.Analysis.ThetaEnd {
		return fmt.Errorf("config: analysis.theta_start %v exceeds analysis.theta_end %v",
			c.Analysis.ThetaStart, c.Analysis.ThetaEnd)
	}
	if !finite(c.Analysis.ThetaStep) || c.Analysis.ThetaStep <= 0 {
		return fmt.Errorf("config: analysis.theta_step must be > 0, got %v", c.Analysis.ThetaStep)
	}
	if !finite(c.Analysis.Delta) {
		return fmt.Errorf("config: analysis.delta must be finite, got %v", c.Analysis.Delta)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("config: analysis.workers must be ≥ 0, got %d", c.Analysis.Workers)
	}

	// Output
	if c.Output.Dir == "" {
		return fmt.Errorf("config: output.dir is required")
	}
	switch c.Output.Format {
	case "csv", "json", "table":
	default:
		return fmt.Errorf("config: output.format %q is invalid; expected csv|json|table", c.Output.Format)
	}

	// Rings
	for name, conformation := range c.Rings {
		if name == "" {
			return fmt.Errorf("config: rings contains an entry with an empty name")
		}
		if conformation == "" {
			return fmt.Errorf("config: rings.%s has an empty conformation string", name)
		}
	}

	// Logging
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level %q is invalid; expected debug|info|warn|error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: logging.format %q is invalid; expected json|console", c.Logging.Format)
	}

	return nil
}
