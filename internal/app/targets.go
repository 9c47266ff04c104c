package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LM-Fabs/m365assess/internal/config"
	"github.com/LM-Fabs/m365assess/internal/output"
	"github.com/LM-Fabs/m365assess/internal/posture"
)

var targetsFlagJSON bool

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show the active best-practice target table",
	Long: `Targets shows the best-practice target table the comparator runs against:
the configured targets when the config file defines any, otherwise the
built-in defaults.`,
	RunE: runTargets,
}

func init() {
	targetsCmd.Flags().BoolVar(&targetsFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	targets := cfg.BestPracticeTargets()
	if targetsFlagJSON || flagJSON {
		return renderJSON(targets)
	}

	fmt.Println(output.Section("Best-practice targets"))
	fmt.Println()
	table := output.NewTable("IMPACT", "CATEGORY", "METRIC", "TARGET")
	for _, t := range targets {
		table.AddRow(
			output.SeverityBadge(posture.Severity(t.Impact)),
			t.Category,
			t.Metric,
			fmt.Sprintf("%g", t.Target),
		)
	}
	table.Print()
	return nil
}
