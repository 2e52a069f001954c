package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultThetaStart = 0.0
	DefaultThetaEnd   = 90.0
	DefaultThetaStep  = 1.0
	DefaultDelta      = 0.0

	// DefaultWorkers of 0 means "one worker per logical CPU"; the sweep
	// service resolves it at run time.
	DefaultWorkers = 0

	DefaultOutputDir    = "output"
	DefaultOutputFormat = "csv"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the analyzer default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate() so that
// optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Analysis ──────────────────────────────────────────────────────────────
	// A fully zero theta section is read as "unset" and defaults to sweeping
	// the whole [0, 90] domain.  A deliberate single-point sweep at theta 0
	// stays expressible by setting a non-zero theta_step explicitly.
	if cfg.Analysis.ThetaStart == 0 && cfg.Analysis.ThetaEnd == 0 && cfg.Analysis.ThetaStep == 0 {
		cfg.Analysis.ThetaEnd = DefaultThetaEnd
	}
	if cfg.Analysis.ThetaStep == 0 {
		cfg.Analysis.ThetaStep = DefaultThetaStep
	}
	// Delta 0 is both the zero value and a meaningful twist ("none"), so it
	// never needs filling.  Workers 0 means auto-size and is left as-is.

	// ── Output ────────────────────────────────────────────────────────────────
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// ── Logging ───────────────────────────────────────────────────────────────
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
