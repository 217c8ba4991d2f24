package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/insights"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "ledger.db"
	cfg.Insights.LargeAmount = 750

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.RulesFile, got.RulesFile)
	assert.Equal(t, cfg.Log, got.Log)
	assert.InDelta(t, 750, got.Insights.LargeAmount, 0.001)
	assert.InDelta(t, cfg.Insights.WeekendRatio, got.Insights.WeekendRatio, 0.001)
	assert.Equal(t, cfg.Insights.PredictionWindow, got.Insights.PredictionWindow)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "storage", cfg.Storage.Path)
	assert.Equal(t, "bank-storage", cfg.Storage.Namespace)
	assert.InDelta(t, 1.4, cfg.Insights.WeekendRatio, 0.001)
	assert.Equal(t, 3, cfg.Insights.SubscriptionMinCount)
	assert.InDelta(t, 500, cfg.Insights.LargeAmount, 0.001)
	assert.Equal(t, 30, cfg.Insights.PredictionWindow)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestThresholdsMatchInsightsDefaults(t *testing.T) {
	got := Default().Insights.Thresholds()
	want := insights.DefaultThresholds()

	assert.True(t, want.WeekendRatio.Equal(got.WeekendRatio))
	assert.True(t, want.LargeAmount.Equal(got.LargeAmount))
	assert.True(t, want.AnomalyMultiplier.Equal(got.AnomalyMultiplier))
	assert.True(t, want.FoodSpendLimit.Equal(got.FoodSpendLimit))
	assert.True(t, want.FoodSavingsRate.Equal(got.FoodSavingsRate))
	assert.True(t, want.SubscriptionSpendLimit.Equal(got.SubscriptionSpendLimit))
	assert.True(t, want.SubscriptionSavingsRate.Equal(got.SubscriptionSavingsRate))
	assert.Equal(t, want.SubscriptionMinCount, got.SubscriptionMinCount)
	assert.Equal(t, want.PredictionWindow, got.PredictionWindow)
	assert.Equal(t, want.PredictionDays, got.PredictionDays)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "postgres"
	cfg.Storage.Namespace = " "
	cfg.Insights.PredictionWindow = 0
	cfg.Insights.FoodSavingsRate = 1.5
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `invalid storage backend "postgres"`)
	assert.Contains(t, msg, "namespace cannot be empty")
	assert.Contains(t, msg, "invalid prediction_window 0")
	assert.Contains(t, msg, "invalid food_savings_rate 1.5")
	assert.Contains(t, msg, `invalid log format "xml"`)
}

func TestValidate_PathRequired(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage path is required for the file backend")

	cfg.Storage.Backend = BackendMemory
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "namespace: bank-storage")
	assert.Contains(t, contents, "weekend_ratio: 1.4")
	assert.Contains(t, contents, "rules_file: rules/categorization-rules.yaml")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "storage"), Resolve("/data", "storage"))
	assert.Equal(t, "/abs/ledger.db", Resolve("/data", "/abs/ledger.db"))
	assert.Equal(t, "", Resolve("/data", ""))
}
