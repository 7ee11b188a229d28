package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.SeedDemoHerd)
	assert.Empty(t, cfg.MongoDB.URI)
	assert.Equal(t, 5.0, cfg.Feed.LowYieldThreshold)
	assert.Equal(t, 45.0, cfg.Feed.MilkPricePerLiter)
	assert.Equal(t, "Smart Dairy Farm", cfg.Farm.Name)
	assert.Equal(t, "INR", cfg.Farm.Currency)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOW_YIELD_THRESHOLD", "15")
	t.Setenv("FEED_COST_GREEN", "0.08")
	t.Setenv("MILK_PRICE_PER_LITER", "0.55")
	t.Setenv("FARM_CURRENCY", "USD")
	t.Setenv("SEED_DEMO_HERD", "true")

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15.0, cfg.Feed.LowYieldThreshold)
	assert.Equal(t, 0.08, cfg.Feed.GreenFodderCost)
	assert.Equal(t, 0.55, cfg.Feed.MilkPricePerLiter)
	assert.Equal(t, "USD", cfg.Farm.Currency)
	assert.True(t, cfg.Server.SeedDemoHerd)
}

func TestLoadBadNumberFallsBack(t *testing.T) {
	t.Setenv("FEED_COST_DRY", "not-a-number")

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Feed.DryFodderCost)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)

	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())

	cfg, err = Load("testdata/absent.env")
	require.NoError(t, err)
	cfg.Feed.MilkPricePerLiter = 0
	assert.Error(t, cfg.Validate())

	cfg, err = Load("testdata/absent.env")
	require.NoError(t, err)
	cfg.Sheets.CredentialsPath = "/tmp/creds.json"
	assert.Error(t, cfg.Validate(), "spreadsheet id required when sheets enabled")
}
