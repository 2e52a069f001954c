package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/RSU-Analyzer/internal/application/analysis"
	"github.com/turtacn/RSU-Analyzer/internal/config"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/export"
	"github.com/turtacn/RSU-Analyzer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// defaultSweepDelta is the N-Py bridge angle used throughout the published
// analyses; it applies when neither the flag nor the config sets delta.
const defaultSweepDelta = 103.0

// newSweepCmd creates the sweep command: RSU over an inclusive theta grid,
// exported as CSV.
func newSweepCmd() *cobra.Command {
	var (
		ringName   string
		confString string
		thetaStart float64
		thetaEnd   float64
		thetaStep  float64
		delta      float64
		workers    int
		outFile    string
		toStdout   bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep RSU over a theta grid and export the curve as CSV",
		Long: "Sweep evaluates the ring strain/uniformity score across an inclusive theta\n" +
			"grid and writes one \"theta,rsu\" CSV row per sample.  The curve's minimum\n" +
			"locates the tilt angle at which the ring closes best.",
		Example: "  rsu sweep --ring syn-T-1\n" +
			"  rsu sweep --conformation RRFFLLBBRRFFLLBB --delta 103 --theta-step 0.5\n" +
			"  rsu sweep --ring syn-S-1 --stdout > curve.csv\n" +
			"  rsu sweep --ring syn-T-1 --config rsu.yaml --watch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			// Grid parameters the flags left untouched come from config;
			// explicit flags always win.
			fromConfig := func(input *analysis.SweepInput, cfg config.AnalysisConfig) {
				if !cmd.Flags().Changed("theta-start") {
					input.ThetaStart = cfg.ThetaStart
				}
				if !cmd.Flags().Changed("theta-end") {
					input.ThetaEnd = cfg.ThetaEnd
				}
				if !cmd.Flags().Changed("theta-step") {
					input.ThetaStep = cfg.ThetaStep
				}
				if !cmd.Flags().Changed("workers") {
					input.Workers = cfg.Workers
				}
				if !cmd.Flags().Changed("delta") && cfg.Delta != 0 {
					input.Delta = cfg.Delta
				}
			}

			input := &analysis.SweepInput{
				Ring:         ringName,
				Conformation: confString,
				ThetaStart:   thetaStart,
				ThetaEnd:     thetaEnd,
				ThetaStep:    thetaStep,
				Delta:        delta,
				Workers:      workers,
			}
			fromConfig(input, cliCtx.Config.Analysis)

			if !watch {
				return runSweepOnce(cmd, cliCtx, input, outFile, toStdout)
			}

			if cliCtx.ConfigPath == "" {
				return errors.InvalidArgument("--watch needs a config file (--config or a discovered rsu.yaml)")
			}
			if err := runSweepOnce(cmd, cliCtx, input, outFile, toStdout); err != nil {
				return err
			}

			config.Watch(cliCtx.ConfigPath, func(cfg *config.Config) {
				next := *input
				fromConfig(&next, cfg.Analysis)
				if err := runSweepOnce(cmd, cliCtx, &next, outFile, toStdout); err != nil {
					PrintError(cmd, err)
				}
			})

			cliCtx.Logger.Info("watching config; sweep re-runs on change",
				logging.String("path", cliCtx.ConfigPath))
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&ringName, "ring", "r", "", "named ring from the catalog (see 'rsu rings')")
	cmd.Flags().StringVar(&confString, "conformation", "", "conformation string, e.g. RRFFLLBBRRFFLLBB (mutually exclusive with --ring)")
	cmd.Flags().Float64Var(&thetaStart, "theta-start", config.DefaultThetaStart, "first theta of the grid (degrees)")
	cmd.Flags().Float64Var(&thetaEnd, "theta-end", config.DefaultThetaEnd, "last theta of the grid (degrees, inclusive)")
	cmd.Flags().Float64Var(&thetaStep, "theta-step", config.DefaultThetaStep, "theta grid step (degrees)")
	cmd.Flags().Float64Var(&delta, "delta", defaultSweepDelta, "bridge twist delta (degrees)")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "concurrent evaluations (0 = one per CPU)")
	cmd.Flags().StringVar(&outFile, "out", "", "CSV filename (default: \"<name> (delta=<d>).csv\")")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write CSV to stdout instead of a file")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the sweep whenever the config file changes")

	return cmd
}

// runSweepOnce performs a single sweep and either streams the CSV to stdout
// or writes the artifact and prints a summary.
func runSweepOnce(cmd *cobra.Command, cliCtx *CLIContext, input *analysis.SweepInput, outFile string, toStdout bool) error {
	ctx, cancel := cliCtx.operationContext(cmd)
	defer cancel()

	result, err := cliCtx.Service.Sweep(ctx, input)
	if err != nil {
		return err
	}

	rows := make([]export.SweepRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = export.SweepRow{Theta: p.Theta, RSU: p.RSU}
	}

	if toStdout {
		data, err := export.EncodeSweepCSV(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	filename := outFile
	if filename == "" {
		filename = export.DefaultSweepFilename(result.Name, result.Delta)
	}
	path, err := cliCtx.Exporter.SweepCSV(filename, rows)
	if err != nil {
		return err
	}

	return PrintResult(cmd, sweepSummary{SweepResult: result, CSVPath: path})
}

// sweepSummary is the sweep presentation wrapper: the analysis result plus
// the artifact location.
type sweepSummary struct {
	*analysis.SweepResult
	CSVPath string `json:"csv_path,omitempty"`
}

func (s sweepSummary) String() string {
	lines := []string{
		fmt.Sprintf("Ring:         %s", s.Name),
		fmt.Sprintf("Conformation: %s (%d units)", s.Conformation, s.Units),
		fmt.Sprintf("Delta:        %s°", formatFloat(s.Delta)),
		fmt.Sprintf("Samples:      %d", len(s.Points)),
		fmt.Sprintf("Min RSU:      %s at theta %s°", formatFloat(s.MinRSU), formatFloat(s.MinTheta)),
	}
	if s.CSVPath != "" {
		lines = append(lines, fmt.Sprintf("CSV:          %s", s.CSVPath))
	}
	return strings.Join(lines, "\n")
}

func (s sweepSummary) TableHeaders() []string {
	return []string{"Name", "Units", "Delta", "Samples", "Min Theta", "Min RSU", "CSV"}
}

func (s sweepSummary) TableRows() [][]string {
	return [][]string{{
		s.Name,
		strconv.Itoa(s.Units),
		formatFloat(s.Delta),
		strconv.Itoa(len(s.Points)),
		formatFloat(s.MinTheta),
		formatFloat(s.MinRSU),
		s.CSVPath,
	}}
}
