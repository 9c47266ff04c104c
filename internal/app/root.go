// Package app contains the Cobra command tree for m365assess.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "m365assess",
	Short: "Security posture assessment for Microsoft 365 tenants",
	Long: `m365assess evaluates a Microsoft 365 tenant's security posture. It takes
raw telemetry collected from the tenant (license utilization, Secure Score,
identity, data protection, endpoint, cloud app, information protection, and
threat protection facts), normalizes it into category scores, aggregates an
overall score, compares it against best-practice targets, and derives ranked
remediation recommendations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("m365assess", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  assess           Score a tenant from a collector facts bundle")
		fmt.Println("  history          List stored assessments and compare over time")
		fmt.Println("  recommendations  Show ranked remediation recommendations")
		fmt.Println("  targets          Show the active best-practice target table")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/m365assess/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
