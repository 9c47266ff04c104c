package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LM-Fabs/m365assess/internal/assessment"
	"github.com/LM-Fabs/m365assess/internal/config"
	"github.com/LM-Fabs/m365assess/internal/output"
	"github.com/LM-Fabs/m365assess/internal/store"
	"github.com/LM-Fabs/m365assess/internal/telemetry"
)

var (
	assessFlagFacts    []string
	assessFlagAssessor string
	assessFlagJSON     bool
	assessFlagDryRun   bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a tenant from a collector facts bundle",
	Long: `Assess loads one or more collector facts bundles (JSON, one tenant each),
runs the scoring pipeline, and stores a completed assessment per bundle.
The previous assessment for each tenant is archived and used as the
comparison baseline.

Multiple --facts files are evaluated concurrently; results are persisted
and rendered in the order the files were given. Each tenant may appear at
most once per run.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringSliceVar(&assessFlagFacts, "facts", nil, "Collector facts bundle, JSON (can be repeated)")
	assessCmd.Flags().StringVar(&assessFlagAssessor, "assessor", "", "Name recorded as the assessor")
	assessCmd.Flags().BoolVar(&assessFlagJSON, "json", false, "Output as JSON")
	assessCmd.Flags().BoolVar(&assessFlagDryRun, "dry-run", false, "Run the pipeline without persisting the assessment")
	_ = assessCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(assessCmd)
}

// assessResult pairs a computed assessment with the previous one it supersedes.
type assessResult struct {
	current  *assessment.Assessment
	previous *assessment.Assessment
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	runner, err := assessment.NewRunner(cfg.Weights, cfg.BestPracticeTargets(), cfg.Thresholds)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Bundles are loaded up front so a batch naming the same tenant twice
	// fails before anything is evaluated: each run archives the tenant's
	// previous assessment, so two in one batch would race over which
	// supersedes which.
	bundles := make([]*telemetry.Facts, len(assessFlagFacts))
	var loads errgroup.Group
	for i, path := range assessFlagFacts {
		loads.Go(func() error {
			facts, err := telemetry.LoadFacts(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			bundles[i] = facts
			return nil
		})
	}
	if err := loads.Wait(); err != nil {
		return err
	}
	if err := rejectDuplicateTenants(assessFlagFacts, bundles); err != nil {
		return err
	}

	// Store reads stay on the main goroutine; the pipeline itself is pure,
	// so distinct tenants are evaluated concurrently.
	results := make([]assessResult, len(bundles))
	for i, facts := range bundles {
		previous, err := db.GetLatestAssessment(facts.TenantID)
		if err != nil {
			return fmt.Errorf("loading previous assessment for %s: %w", facts.TenantID, err)
		}
		results[i].previous = previous
	}

	var runs errgroup.Group
	for i, facts := range bundles {
		runs.Go(func() error {
			current, err := runner.Run(facts, assessFlagAssessor, results[i].previous)
			if err != nil {
				return fmt.Errorf("%s: %w", assessFlagFacts[i], err)
			}
			results[i].current = current
			return nil
		})
	}
	if err := runs.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if assessFlagDryRun {
			continue
		}
		if err := db.SaveAssessment(r.current); err != nil {
			return fmt.Errorf("saving assessment for %s: %w", r.current.TenantID, err)
		}
		if r.previous != nil && r.previous.Status == assessment.StatusCompleted {
			if err := assessment.Supersede(r.previous); err != nil {
				return err
			}
			if err := db.UpdateStatus(r.previous); err != nil {
				return fmt.Errorf("archiving assessment %s: %w", r.previous.ID, err)
			}
		}
	}

	if assessFlagJSON || flagJSON {
		assessments := make([]*assessment.Assessment, 0, len(results))
		for _, r := range results {
			assessments = append(assessments, r.current)
		}
		return renderJSON(assessments)
	}
	for _, r := range results {
		renderScorecard(r.current)
	}
	return nil
}

// rejectDuplicateTenants fails when two facts files in one batch name the
// same tenant.
func rejectDuplicateTenants(paths []string, bundles []*telemetry.Facts) error {
	seen := make(map[string]string, len(bundles))
	for i, facts := range bundles {
		if first, ok := seen[facts.TenantID]; ok {
			return fmt.Errorf("tenant %s appears in both %s and %s; assess each tenant once per run",
				facts.TenantID, first, paths[i])
		}
		seen[facts.TenantID] = paths[i]
	}
	return nil
}

// renderScorecard prints the assessment summary: overall score, risk level,
// category breakdown, and ranked recommendations.
func renderScorecard(a *assessment.Assessment) {
	fmt.Println(output.Section(fmt.Sprintf("Tenant %s (%s)", a.TenantID, a.AssessmentDate.Format("2006-01-02"))))
	fmt.Printf("\n Overall  %s   Risk %s\n", output.ScoreBar(a.Metrics.OverallScore, 20), output.RiskBadge(a.RiskLevel))
	if a.Comparison != nil && a.Comparison.PreviousID != "" {
		fmt.Printf(" Change since %s: %s\n",
			a.Comparison.PreviousDate.Format("2006-01-02"), output.DeltaArrow(a.Comparison.OverallDelta))
	}
	fmt.Println()

	table := output.NewTable("CATEGORY", "SCORE", "COLLECTED")
	for _, category := range sortedCategories(a) {
		cm := a.Metrics.Categories[category]
		collected := "yes"
		if !cm.DataCollected {
			collected = output.StyleWarning.Render("no")
		}
		table.AddRow(category, output.ScoreBar(cm.Score, 10), collected)
	}
	table.Print()

	if len(a.Recommendations) == 0 {
		fmt.Println("\n No recommendations: all best-practice targets met.")
		return
	}

	fmt.Println(output.Section(fmt.Sprintf("Recommendations (%d)", len(a.Recommendations))))
	recTable := output.NewTable("SEVERITY", "CATEGORY", "RECOMMENDATION")
	for _, rec := range a.Recommendations {
		recTable.AddRow(output.SeverityBadge(rec.Severity), rec.Category, rec.Title)
	}
	fmt.Println()
	recTable.Print()
}

func sortedCategories(a *assessment.Assessment) []string {
	names := make([]string, 0, len(a.Metrics.Categories))
	for name := range a.Metrics.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// renderJSON writes any value as indented JSON to stdout.
func renderJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
