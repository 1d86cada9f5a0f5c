package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/apicradle/apicradle/internal/scaffold"
	"github.com/spf13/cobra"
)

var scoreRunner = runScore

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the heuristic quality score for an endpoint set",
		Long: "Compute the 0-10 quality score for a built-in demo, a request file, or " +
			"the custom-requirement template, without generating any artifacts.",
		Example: strings.TrimSpace(`  apicradle score --demo "Todo API"
  apicradle score --input request.yaml`),
		RunE: func(cmd *cobra.Command, args []string) error {
			demo, err := cmd.Flags().GetString("demo")
			if err != nil {
				return err
			}
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			cfg := &GenerateConfig{Demo: strings.TrimSpace(demo), Input: strings.TrimSpace(input)}
			cfg.normalize()
			if err := cfg.validate(); err != nil {
				return err
			}
			return scoreRunner(cfg)
		},
	}

	cmd.Flags().String("demo", "", "Built-in demo API to score")
	cmd.Flags().String("input", "", "Path to a YAML request file describing the API")

	return cmd
}

func runScore(cfg *GenerateConfig) error {
	req, err := resolveRequest(cfg)
	if err != nil {
		return err
	}
	score := scaffold.Score(req.Endpoints)
	fmt.Fprintf(os.Stdout, "Quality score: %d/10\n%s\n", score, scaffold.Interpretation(score))
	return nil
}
