package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/RSU-Analyzer/internal/application/analysis"
)

// newEvalCmd creates the eval command: a single (conformation, theta, delta)
// evaluation.
func newEvalCmd() *cobra.Command {
	var (
		ringName   string
		confString string
		theta      float64
		delta      float64
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate RSU for one conformation at a single theta",
		Example: "  rsu eval --ring syn-T-1 --theta 30\n" +
			"  rsu eval --conformation RLRLRL --theta 0 --delta 60 --output json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			input := &analysis.EvaluateInput{
				Ring:         ringName,
				Conformation: confString,
				Theta:        theta,
				Delta:        delta,
			}
			if !cmd.Flags().Changed("delta") && cliCtx.Config.Analysis.Delta != 0 {
				input.Delta = cliCtx.Config.Analysis.Delta
			}

			ctx, cancel := cliCtx.operationContext(cmd)
			defer cancel()

			result, err := cliCtx.Service.Evaluate(ctx, input)
			if err != nil {
				return err
			}

			return PrintResult(cmd, evalView{result})
		},
	}

	cmd.Flags().StringVarP(&ringName, "ring", "r", "", "named ring from the catalog (see 'rsu rings')")
	cmd.Flags().StringVar(&confString, "conformation", "", "conformation string (mutually exclusive with --ring)")
	cmd.Flags().Float64Var(&theta, "theta", 0, "ligand tilt theta (degrees, 0-90)")
	cmd.Flags().Float64Var(&delta, "delta", defaultSweepDelta, "bridge twist delta (degrees)")

	return cmd
}

// evalView is the single-evaluation presentation wrapper.
type evalView struct {
	*analysis.EvaluateResult
}

func (v evalView) String() string {
	lines := []string{
		fmt.Sprintf("Ring:         %s", v.Name),
		fmt.Sprintf("Conformation: %s (%d units)", v.Conformation, v.Units),
		fmt.Sprintf("Theta:        %s°", formatFloat(v.Theta)),
		fmt.Sprintf("Delta:        %s°", formatFloat(v.Delta)),
		fmt.Sprintf("RSU:          %s", formatFloat(v.RSU)),
		fmt.Sprintf("Closure gap:  %s", formatFloat(v.ClosureGap)),
	}
	return strings.Join(lines, "\n")
}

func (v evalView) TableHeaders() []string {
	return []string{"Name", "Units", "Theta", "Delta", "RSU", "Closure Gap"}
}

func (v evalView) TableRows() [][]string {
	return [][]string{{
		v.Name,
		strconv.Itoa(v.Units),
		formatFloat(v.Theta),
		formatFloat(v.Delta),
		formatFloat(v.RSU),
		formatFloat(v.ClosureGap),
	}}
}
