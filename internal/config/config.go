package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pocketledger/pocketledger/internal/insights"
)

// FileName is the config file at the root of a data directory.
const FileName = "pocketledger.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultNamespace is the key the snapshot is stored under.
const DefaultNamespace = "bank-storage"

// Config represents the top-level pocketledger.yaml configuration.
type Config struct {
	Storage   StorageConfig  `yaml:"storage"`
	Insights  InsightsConfig `yaml:"insights"`
	RulesFile string         `yaml:"rules_file"`
	Log       LogConfig      `yaml:"log"`
}

// StorageConfig selects where the snapshot lives.
type StorageConfig struct {
	Backend   string `yaml:"backend"`   // file, sqlite or memory
	Path      string `yaml:"path"`      // directory (file) or database file (sqlite), relative to the data dir
	Namespace string `yaml:"namespace"` // key of the snapshot slot
}

// InsightsConfig tunes when insights fire.
type InsightsConfig struct {
	WeekendRatio            float64 `yaml:"weekend_ratio"`
	SubscriptionMinCount    int     `yaml:"subscription_min_count"`
	LargeAmount             float64 `yaml:"large_amount"`
	AnomalyMultiplier       float64 `yaml:"anomaly_multiplier"`
	PredictionWindow        int     `yaml:"prediction_window"`
	PredictionDays          int     `yaml:"prediction_days"`
	FoodSpendLimit          float64 `yaml:"food_spend_limit"`
	FoodSavingsRate         float64 `yaml:"food_savings_rate"`
	SubscriptionSpendLimit  float64 `yaml:"subscription_spend_limit"`
	SubscriptionSavingsRate float64 `yaml:"subscription_savings_rate"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads a pocketledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	th := insights.DefaultThresholds()
	return &Config{
		Storage: StorageConfig{
			Backend:   BackendFile,
			Path:      "storage",
			Namespace: DefaultNamespace,
		},
		Insights: InsightsConfig{
			WeekendRatio:            th.WeekendRatio.InexactFloat64(),
			SubscriptionMinCount:    th.SubscriptionMinCount,
			LargeAmount:             th.LargeAmount.InexactFloat64(),
			AnomalyMultiplier:       th.AnomalyMultiplier.InexactFloat64(),
			PredictionWindow:        th.PredictionWindow,
			PredictionDays:          th.PredictionDays,
			FoodSpendLimit:          th.FoodSpendLimit.InexactFloat64(),
			FoodSavingsRate:         th.FoodSavingsRate.InexactFloat64(),
			SubscriptionSpendLimit:  th.SubscriptionSpendLimit.InexactFloat64(),
			SubscriptionSavingsRate: th.SubscriptionSavingsRate.InexactFloat64(),
		},
		RulesFile: filepath.Join("rules", "categorization-rules.yaml"),
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, fmt.Sprintf("storage path is required for the %s backend", c.Storage.Backend))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid storage backend %q: must be one of [%s %s %s]", c.Storage.Backend, BackendFile, BackendSQLite, BackendMemory))
	}
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		errs = append(errs, "storage namespace cannot be empty")
	}

	in := c.Insights
	if in.WeekendRatio <= 0 {
		errs = append(errs, fmt.Sprintf("invalid weekend_ratio %v: must be positive", in.WeekendRatio))
	}
	if in.SubscriptionMinCount < 0 {
		errs = append(errs, fmt.Sprintf("invalid subscription_min_count %d: must not be negative", in.SubscriptionMinCount))
	}
	if in.AnomalyMultiplier <= 0 {
		errs = append(errs, fmt.Sprintf("invalid anomaly_multiplier %v: must be positive", in.AnomalyMultiplier))
	}
	if in.PredictionWindow < 1 {
		errs = append(errs, fmt.Sprintf("invalid prediction_window %d: must be at least 1", in.PredictionWindow))
	}
	if in.PredictionDays < 1 {
		errs = append(errs, fmt.Sprintf("invalid prediction_days %d: must be at least 1", in.PredictionDays))
	}
	for name, rate := range map[string]float64{
		"food_savings_rate":         in.FoodSavingsRate,
		"subscription_savings_rate": in.SubscriptionSavingsRate,
	} {
		if rate < 0 || rate > 1 {
			errs = append(errs, fmt.Sprintf("invalid %s %v: must be in [0,1]", name, rate))
		}
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q: must be console or json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Thresholds converts the insights section.
func (c InsightsConfig) Thresholds() insights.Thresholds {
	return insights.Thresholds{
		WeekendRatio:            decimal.NewFromFloat(c.WeekendRatio),
		SubscriptionMinCount:    c.SubscriptionMinCount,
		LargeAmount:             decimal.NewFromFloat(c.LargeAmount),
		AnomalyMultiplier:       decimal.NewFromFloat(c.AnomalyMultiplier),
		PredictionWindow:        c.PredictionWindow,
		PredictionDays:          c.PredictionDays,
		FoodSpendLimit:          decimal.NewFromFloat(c.FoodSpendLimit),
		FoodSavingsRate:         decimal.NewFromFloat(c.FoodSavingsRate),
		SubscriptionSpendLimit:  decimal.NewFromFloat(c.SubscriptionSpendLimit),
		SubscriptionSavingsRate: decimal.NewFromFloat(c.SubscriptionSavingsRate),
	}
}

// Resolve makes a config-relative path absolute against the data dir.
func Resolve(dataDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}
