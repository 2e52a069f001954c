package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all analyzer settings.
const envPrefix = "RSU"

// defaultConfigName is the base name (without extension) searched for when no
// explicit config file path is supplied.
const defaultConfigName = "config"

// Sentinel errors returned by Load and friends.  Callers distinguish the
// failure stage with errors.Is.
var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParseError   = errors.New("config: parse failed")
	ErrConfigValidation   = errors.New("config: validation failed")
)

// ─────────────────────────────────────────────────────────────────────────────
// Load options
// ─────────────────────────────────────────────────────────────────────────────

type loadOptions struct {
	configPath  string
	searchPaths []string
	overrides   map[string]interface{}
}

// Option customises a Load call.
type Option func(*loadOptions)

// WithConfigPath makes Load read exactly the given file.
func WithConfigPath(path string) Option {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths makes Load look for "config.yaml" in the given directories,
// first match wins.  Ignored when WithConfigPath is also supplied.
func WithSearchPaths(paths ...string) Option {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// WithOverrides applies the given dotted-key values on top of everything else
// (file and environment).  Intended for CLI flags.
func WithOverrides(overrides map[string]interface{}) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(overrides))
		}
		for k, v := range overrides {
			o.overrides[k] = v
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────────────────

// newViper builds a pre-configured Viper instance with the analyzer's standard
// settings: YAML file type, RSU_ env prefix, automatic env binding, and a key
// replacer that maps "." → "_" so that nested keys like "analysis.delta"
// resolve to "RSU_ANALYSIS_DELTA".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Registering every known key keeps env-only loading functional: viper's
	// Unmarshal only visits keys it has seen from a file, a default, or an
	// explicit Set.
	v.SetDefault("analysis.theta_start", DefaultThetaStart)
	v.SetDefault("analysis.theta_end", DefaultThetaEnd)
	v.SetDefault("analysis.theta_step", DefaultThetaStep)
	v.SetDefault("analysis.delta", DefaultDelta)
	v.SetDefault("analysis.workers", DefaultWorkers)
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	return v
}

// Load assembles a Config from, in increasing precedence: built-in defaults,
// an optional YAML file, RSU_* environment variables, and explicit overrides.
// The result is validated, stored as the process-wide config (see Get), and
// returned.
func Load(opts ...Option) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := newViper()

	readFile := false
	switch {
	case o.configPath != "":
		v.SetConfigFile(o.configPath)
		readFile = true
	case len(o.searchPaths) > 0:
		v.SetConfigName(defaultConfigName)
		for _, p := range o.searchPaths {
			v.AddConfigPath(p)
		}
		readFile = true
	}

	if readFile {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %v", ErrConfigFileNotFound, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
		}
	}

	for key, val := range o.overrides {
		v.Set(key, val)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromFile reads the YAML file at configPath, merges RSU_* environment
// variable overrides, applies defaults, and validates the result.
func LoadFromFile(configPath string) (*Config, error) {
	return Load(WithConfigPath(configPath))
}

// LoadFromEnv builds a Config entirely from defaults and RSU_* environment
// variables, with no config file required.  This is the preferred loading
// strategy for scripted and containerised use.
//
// Environment variable naming convention:
//
//	RSU_<SECTION>_<FIELD>   e.g.  RSU_ANALYSIS_DELTA, RSU_OUTPUT_DIR
func LoadFromEnv() (*Config, error) {
	return Load()
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, validates the result, and publishes it as the global config.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}

	setGlobal(cfg)
	return cfg, nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(opts ...Option) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

// ─────────────────────────────────────────────────────────────────────────────
// Hot reload
// ─────────────────────────────────────────────────────────────────────────────

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading long sweep sessions; callers are responsible for applying
// only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// A change that fails to parse or validate is skipped without invoking
// onChange so the application never observes a broken config.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first, so errors here
	// only mean the first change event does the real work.
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// ─────────────────────────────────────────────────────────────────────────────
// Global config
// ─────────────────────────────────────────────────────────────────────────────

var (
	globalMu sync.RWMutex
	global   *Config
)

func setGlobal(cfg *Config) {
	globalMu.Lock()
	global = cfg
	globalMu.Unlock()
}

// Get returns the most recently loaded Config, or nil when Load has never
// succeeded.  Components should prefer receiving a *Config explicitly; Get
// exists for hot-reload consumers and late-bound lookups.
func Get() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}
