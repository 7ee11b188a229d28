package herd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdtrack/herdtrack/internal/config"
	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/repository/memory"
)

var testClock = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		LowYieldThreshold: 5,
		GreenFodderCost:   5,
		DryFodderCost:     8,
		ConcentrateCost:   25,
		MineralCost:       50,
		MilkPricePerLiter: 45,
	}
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New(models.FarmSettings{
		FarmName:          "Smart Dairy Farm",
		MilkPricePerLiter: 45,
		Currency:          "INR",
	}).WithClock(func() time.Time { return testClock })

	svc := NewService(store, store, testFeedConfig(), nil).
		WithClock(func() time.Time { return testClock })
	return svc, store
}

func TestCreateCowSeedsHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var seededID string
	var seededBase float64
	svc.WithSeeder(func(cowID string, baseYield float64, now time.Time) []models.YieldEntry {
		seededID = cowID
		seededBase = baseYield
		return JitterSeeder(cowID, baseYield, now)
	})

	created, err := svc.CreateCow(ctx, models.CowRecord{Name: "Lakshmi", CurrentYield: 12})
	require.NoError(t, err)
	assert.Equal(t, "COW001", created.ID)
	assert.Equal(t, "COW001", seededID)
	assert.Equal(t, 12.0, seededBase)

	entries, err := svc.ListYield(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 30)
	assert.Equal(t, "2024-05-17", entries[0].Date)
	assert.Equal(t, "2024-06-15", entries[29].Date)
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.Yield, 11.0)
		assert.Less(t, e.Yield, 13.0)
	}
}

func TestCreateCowDefaultsBaseYield(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var seededBase float64
	svc.WithSeeder(func(cowID string, baseYield float64, now time.Time) []models.YieldEntry {
		seededBase = baseYield
		return nil
	})

	_, err := svc.CreateCow(ctx, models.CowRecord{Name: "Kamala"})
	require.NoError(t, err)
	assert.Equal(t, 8.0, seededBase)
}

func TestCreateCowNopSeeder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.WithSeeder(NopSeeder)

	created, err := svc.CreateCow(ctx, models.CowRecord{CurrentYield: 10})
	require.NoError(t, err)

	entries, err := svc.ListYield(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetCowEnriches(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.WithSeeder(NopSeeder)

	created, err := svc.CreateCow(ctx, models.CowRecord{
		Name:            "Lakshmi",
		DOB:             "2020-03-15",
		Weight:          450,
		CurrentYield:    12,
		Temperature:     38.5,
		ActivityScore:   75,
		RuminationScore: 80,
	})
	require.NoError(t, err)

	details, err := svc.GetCow(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, details.HealthScore)
	assert.Equal(t, 4, details.Age)
	assert.Equal(t, models.StatusHealthy, details.Status)
	assert.InDelta(t, 540, details.FeedRequirements.ExpectedMilkRevenue, 1e-9)

	_, err = svc.GetCow(ctx, "COW999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHealthDetail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.WithSeeder(NopSeeder)

	created, err := svc.CreateCow(ctx, models.CowRecord{
		Temperature:     40,
		ActivityScore:   50,
		RuminationScore: 60,
		CurrentYield:    2,
	})
	require.NoError(t, err)

	report, err := svc.HealthDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, report.HealthScore)
	assert.Equal(t, models.StatusAlert, report.Status)
	assert.Equal(t, []string{
		"High fever detected",
		"Low activity",
		"Poor rumination",
		"Low milk yield",
	}, report.Alerts)
	assert.Equal(t, 40.0, report.Temperature)
}

func TestPricingUsesSettingsMilkPrice(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	svc.WithSeeder(NopSeeder)

	created, err := svc.CreateCow(ctx, models.CowRecord{Weight: 450, CurrentYield: 12})
	require.NoError(t, err)

	price := 50.0
	_, err = store.UpdateSettings(ctx, models.SettingsPatch{MilkPricePerLiter: &price})
	require.NoError(t, err)

	feed, err := svc.FeedRequirements(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 600, feed.ExpectedMilkRevenue, 1e-9)
}

func TestRecordYieldUsesRouteID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	entry, err := svc.RecordYield(ctx, "COW007", models.YieldEntry{CowID: "spoofed", Yield: 9.5})
	require.NoError(t, err)
	assert.Equal(t, "COW007", entry.CowID)
	assert.Equal(t, "2024-06-15", entry.Date)
}

func TestSeedDemoHerd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	svc.WithSeeder(NopSeeder)

	require.NoError(t, svc.SeedDemoHerd(ctx))

	cows, err := svc.ListCows(ctx)
	require.NoError(t, err)
	require.Len(t, cows, 3)
	assert.Equal(t, "Lakshmi", cows[0].Name)

	// Idempotent: a populated store is left alone.
	require.NoError(t, svc.SeedDemoHerd(ctx))
	cows, err = svc.ListCows(ctx)
	require.NoError(t, err)
	assert.Len(t, cows, 3)
}

func TestJitterSeederShape(t *testing.T) {
	entries := JitterSeeder("COW001", 10, testClock)
	require.Len(t, entries, 30)
	assert.Equal(t, "2024-05-17", entries[0].Date)
	assert.Equal(t, "2024-06-15", entries[29].Date)
	for _, e := range entries {
		assert.Equal(t, "COW001", e.CowID)
		assert.GreaterOrEqual(t, e.Yield, 9.0)
		assert.Less(t, e.Yield, 11.0)
	}
}
