// Package cli implements the rsu command tree: sweep, eval, chain and rings,
// plus the global flag surface shared by all of them.  Commands resolve their
// dependencies from a CLIContext that the root command builds once per
// invocation, so subcommands stay free of initialization logic.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/RSU-Analyzer/internal/application/analysis"
	"github.com/turtacn/RSU-Analyzer/internal/config"
	"github.com/turtacn/RSU-Analyzer/internal/domain/ring"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/export"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	OutputDir    string
	Verbose      bool
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     logging.Logger
	Service    analysis.Service
	Exporter   *export.Exporter
	Catalog    ring.Catalog

	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// operationContext derives the context a command operation runs under,
// honoring the global --timeout flag.
func (c *CLIContext) operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(cmd.Context(), c.Timeout)
	}
	return context.WithCancel(cmd.Context())
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rsu",
		Short: "RSU-Analyzer — ring strain analysis for cyclic metal-ligand assemblies",
		Long: "RSU-Analyzer reconstructs the 3-D geometry of cyclic metal-ligand assemblies\n" +
			"from symbolic conformation strings and scores how well each ring closes.\n" +
			"The ring strain/uniformity score (RSU) is the closure gap per ligand unit:\n" +
			"0 means the walked chain returns exactly to its origin.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./rsu.yaml, ~/.rsu/config.yaml, /etc/rsu/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json, table)")
	pf.StringVar(&opts.OutputDir, "out-dir", "", "directory for exported artifacts (default: config output.dir)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose (debug-level) logging")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "cancel long-running operations after this duration (0 = no limit)")

	cmd.AddCommand(
		newSweepCmd(),
		newEvalCmd(),
		newChainCmd(),
		newRingsCmd(),
	)

	return cmd
}

// persistentPreRun initializes config, logger, catalog and services, then
// stores the CLIContext on the command's context for subcommands.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if opts.NoColor {
		color.NoColor = true
	}

	cfg, cfgPath, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logging.SetDefault(logger)

	catalog := ring.DefaultCatalog()
	for name, conf := range cfg.Rings {
		catalog[name] = conf
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		ConfigPath:   cfgPath,
		Logger:       logger,
		Service:      analysis.NewService(catalog, logger),
		Exporter:     export.New(cfg.Output.Dir, logger),
		Catalog:      catalog,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
		Timeout:      opts.Timeout,
	}

	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
// It returns the path of the config file actually used, empty when running on
// environment and defaults alone.
func initConfig(opts *RootOptions) (*config.Config, string, error) {
	overrides := map[string]interface{}{}
	if opts.OutputDir != "" {
		overrides["output.dir"] = opts.OutputDir
	}
	if opts.LogLevel != "" {
		overrides["logging.level"] = opts.LogLevel
	}

	if opts.ConfigPath != "" {
		cfg, err := config.Load(config.WithConfigPath(opts.ConfigPath), config.WithOverrides(overrides))
		return cfg, opts.ConfigPath, err
	}

	// Search default paths.
	searchPaths := []string{"./rsu.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".rsu", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/rsu/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			cfg, err := config.Load(config.WithConfigPath(p), config.WithOverrides(overrides))
			return cfg, p, err
		}
	}

	// No config file found; environment and defaults only.
	cfg, err := config.Load(config.WithOverrides(overrides))
	return cfg, "", err
}

// initLogger creates the process logger from config plus the CLI overrides.
// --verbose wins over every configured level.
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	logCfg := cfg.Logging
	if opts.Verbose {
		logCfg.Level = string(logging.LevelDebug)
	}
	return logging.NewLogger(logCfg)
}

// GetCLIContext extracts the CLIContext placed on the command tree by the
// root command's PersistentPreRunE.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is not initialized")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLI context missing; run commands through the root command")
	}

	return cliCtx, nil
}

// Execute runs the command tree against a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the command tree; cancellation of ctx aborts running
// sweeps and unblocks watch mode.
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCommand()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Output rendering
// ─────────────────────────────────────────────────────────────────────────────

// tableProvider is implemented by result views that can render themselves as
// a table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format selected by the global --output flag.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		// Fallback to JSON if context unavailable.
		return printJSON(cmd, data)
	}

	switch strings.ToLower(cliCtx.OutputFormat) {
	case "json":
		return printJSON(cmd, data)
	case "table":
		return printTable(cmd, data)
	default:
		return printText(cmd, data)
	}
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printText outputs data as a simple string representation to stdout.
func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// printTable outputs data as a table when it provides one, otherwise falls
// back to text.
func printTable(cmd *cobra.Command, data interface{}) error {
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(cmd, data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("Error:"), err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("OK:"), msg)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return sb.String()
}

// formatFloat renders a float with full precision and no trailing zeros,
// matching the CSV export encoding.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
