package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LM-Fabs/m365assess/internal/assessment"
	"github.com/LM-Fabs/m365assess/internal/config"
	"github.com/LM-Fabs/m365assess/internal/output"
	"github.com/LM-Fabs/m365assess/internal/store"
)

var (
	historyFlagTenant  string
	historyFlagLimit   int
	historyFlagCompare bool
	historyFlagJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored assessments and compare over time",
	Long: `History lists the stored assessments for a tenant, newest first.
With --compare, the two most recent assessments are diffed per category
with trend arrows.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlagTenant, "tenant", "", "Tenant ID to list assessments for")
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of assessments to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyFlagCompare, "compare", false, "Diff the two most recent assessments")
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")
	_ = historyCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if historyFlagCompare {
		return runHistoryCompare(db)
	}

	assessments, err := db.ListAssessments(historyFlagTenant, historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing assessments: %w", err)
	}

	if historyFlagJSON || flagJSON {
		return renderJSON(assessments)
	}

	if len(assessments) == 0 {
		fmt.Printf("No assessments stored for tenant %s.\n", historyFlagTenant)
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Assessments for %s", historyFlagTenant)))
	fmt.Println()
	table := output.NewTable("DATE", "SCORE", "RISK", "STATUS", "ID")
	for _, a := range assessments {
		table.AddRow(
			a.AssessmentDate.Format("2006-01-02"),
			fmt.Sprintf("%d", a.Metrics.OverallScore),
			output.RiskBadge(a.RiskLevel),
			string(a.Status),
			a.ID,
		)
	}
	table.Print()
	return nil
}

// runHistoryCompare diffs the two most recent assessments for the tenant.
func runHistoryCompare(db *store.DB) error {
	list, err := db.ListAssessments(historyFlagTenant, 2)
	if err != nil {
		return fmt.Errorf("listing assessments: %w", err)
	}
	if len(list) < 2 {
		return fmt.Errorf("need at least two assessments for tenant %s to compare, have %d",
			historyFlagTenant, len(list))
	}

	current, err := db.GetAssessment(list[0].ID)
	if err != nil {
		return err
	}
	previous, err := db.GetAssessment(list[1].ID)
	if err != nil {
		return err
	}

	deltas := assessment.CompareMetrics(previous.Metrics, current.Metrics)

	if historyFlagJSON || flagJSON {
		return renderJSON(deltas)
	}

	fmt.Println(output.Section(fmt.Sprintf("Tenant %s: %s vs %s",
		historyFlagTenant,
		previous.AssessmentDate.Format("2006-01-02"),
		current.AssessmentDate.Format("2006-01-02"))))
	fmt.Printf("\n Overall  %d → %d  %s\n\n",
		previous.Metrics.OverallScore, current.Metrics.OverallScore,
		output.DeltaArrow(current.Metrics.OverallScore-previous.Metrics.OverallScore))

	table := output.NewTable("CATEGORY", "PREVIOUS", "CURRENT", "TREND")
	for _, d := range deltas {
		table.AddRow(d.Category,
			fmt.Sprintf("%d", d.Previous),
			fmt.Sprintf("%d", d.Current),
			output.DeltaArrow(d.Delta))
	}
	table.Print()
	return nil
}
