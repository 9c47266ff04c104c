package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/LM-Fabs/m365assess/internal/posture"
)

// weightSumTolerance mirrors the aggregator's tolerance for the weight sum.
const weightSumTolerance = 1e-9

// Config is the top-level m365assess configuration. It is immutable per run:
// commands load it once and thread it into the pipeline.
type Config struct {
	// DBPath overrides the assessment database location.
	DBPath string `mapstructure:"db_path"`

	// Weights is the category weight table for overall score aggregation.
	Weights map[string]float64 `mapstructure:"weights"`

	// Thresholds are the score and alert boundaries for risk classification.
	Thresholds posture.RiskThresholds `mapstructure:"thresholds"`

	// Targets is the best-practice target table, in comparison order.
	Targets []Target `mapstructure:"targets"`

	// Output defines output preferences.
	Output Output `mapstructure:"output"`
}

// Target is the config-file shape of one best-practice target.
type Target struct {
	Category string  `mapstructure:"category"`
	Metric   string  `mapstructure:"metric"`
	Target   float64 `mapstructure:"target"`
	Impact   string  `mapstructure:"impact"`
}

// Output defines output preferences.
type Output struct {
	// Color enables colored terminal output; the --no-color flag and
	// non-tty stdout both override it off.
	Color bool `mapstructure:"color"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location),
// applies defaults, and validates the scoring configuration. Invalid weights
// or thresholds fail here with a posture.ConfigError naming the bad key, so
// no assessment is ever produced from a malformed setup.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "")
	defaults := posture.DefaultRiskThresholds()
	v.SetDefault("thresholds.good", defaults.Good)
	v.SetDefault("thresholds.warning", defaults.Warning)
	v.SetDefault("thresholds.critical", defaults.Critical)
	v.SetDefault("thresholds.medium_alerts", defaults.MediumAlerts)
	v.SetDefault("thresholds.high_alerts", defaults.HighAlerts)
	v.SetDefault("output.color", DefaultOutput.Color)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// A missing config file is not an error; everything has a default.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Weight defaults are applied after unmarshalling: viper would merge a
	// default weight map key-by-key with the configured one, which breaks
	// custom category schemes.
	if len(cfg.Weights) == 0 {
		cfg.Weights = posture.DefaultWeights()
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the scoring configuration: weight sanity, threshold
// ordering, and target impact values.
func (c *Config) Validate() error {
	sum := 0.0
	for category, w := range c.Weights {
		if w < 0 {
			return &posture.ConfigError{
				Key:    "weights." + category,
				Reason: fmt.Sprintf("weight must not be negative, got %g", w),
			}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return &posture.ConfigError{
			Key:    "weights",
			Reason: fmt.Sprintf("weights sum to %g, want 1.0", sum),
		}
	}

	if err := c.Thresholds.Validate(); err != nil {
		return err
	}

	for _, t := range c.Targets {
		switch posture.Impact(t.Impact) {
		case posture.ImpactHigh, posture.ImpactMedium, posture.ImpactLow:
		default:
			return &posture.ConfigError{
				Key:    fmt.Sprintf("targets.%s.%s", t.Category, t.Metric),
				Reason: fmt.Sprintf("impact must be high, medium, or low, got %q", t.Impact),
			}
		}
	}
	return nil
}

// BestPracticeTargets returns the configured target table, falling back to
// the built-in defaults when the config file defines none.
func (c *Config) BestPracticeTargets() []posture.BestPracticeTarget {
	if len(c.Targets) == 0 {
		return DefaultTargets
	}
	targets := make([]posture.BestPracticeTarget, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, posture.BestPracticeTarget{
			Category: t.Category,
			Metric:   t.Metric,
			Target:   t.Target,
			Impact:   posture.Impact(t.Impact),
		})
	}
	return targets
}

// DatabasePath returns the configured database path, or the default under
// the config directory.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
