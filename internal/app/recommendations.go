package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LM-Fabs/m365assess/internal/config"
	"github.com/LM-Fabs/m365assess/internal/output"
	"github.com/LM-Fabs/m365assess/internal/posture"
	"github.com/LM-Fabs/m365assess/internal/store"
)

var (
	recsFlagTenant   string
	recsFlagSeverity string
	recsFlagJSON     bool
)

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Show ranked remediation recommendations",
	Long: `Recommendations shows the ranked remediation entries from a tenant's most
recent assessment, highest severity first.`,
	RunE: runRecommendations,
}

func init() {
	recommendationsCmd.Flags().StringVar(&recsFlagTenant, "tenant", "", "Tenant ID")
	recommendationsCmd.Flags().StringVar(&recsFlagSeverity, "severity", "", "Only show this severity (high, medium, low)")
	recommendationsCmd.Flags().BoolVar(&recsFlagJSON, "json", false, "Output as JSON")
	_ = recommendationsCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(recommendationsCmd)
}

func runRecommendations(cmd *cobra.Command, args []string) error {
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

	a, err := db.GetLatestAssessment(recsFlagTenant)
	if err != nil {
		return fmt.Errorf("loading latest assessment: %w", err)
	}
	if a == nil {
		return fmt.Errorf("no assessments stored for tenant %s", recsFlagTenant)
	}

	recs := a.Recommendations
	if recsFlagSeverity != "" {
		filtered := recs[:0:0]
		for _, rec := range recs {
			if rec.Severity == posture.Severity(recsFlagSeverity) {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}

	if recsFlagJSON || flagJSON {
		return renderJSON(recs)
	}

	if len(recs) == 0 {
		fmt.Printf("No recommendations for tenant %s.\n", recsFlagTenant)
		return nil
	}

	fmt.Println(output.Section(fmt.Sprintf("Recommendations for %s (%s)",
		recsFlagTenant, a.AssessmentDate.Format("2006-01-02"))))
	for _, rec := range recs {
		fmt.Printf("\n %s  %s\n", output.SeverityBadge(rec.Severity), output.StyleBold.Render(rec.Title))
		fmt.Printf("   %s\n", rec.Description)
		fmt.Printf("   Remediation: %s\n", rec.Remediation)
		for _, ref := range rec.References {
			fmt.Printf("   %s\n", output.StyleMuted.Render(ref))
		}
	}
	return nil
}
