package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
)

var testClock = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return New(models.FarmSettings{
		FarmName:          "Smart Dairy Farm",
		Location:          "Coimbatore, Tamil Nadu",
		CenterLat:         11.0168,
		CenterLng:         76.9558,
		MilkPricePerLiter: 45,
		Currency:          "INR",
	}).WithClock(func() time.Time { return testClock })
}

func TestCreateCowAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	first, err := store.CreateCow(ctx, models.CowRecord{Name: "Lakshmi"})
	require.NoError(t, err)
	assert.Equal(t, "COW001", first.ID)
	assert.Equal(t, testClock, first.LastUpdated)

	_, err = store.CreateCow(ctx, models.CowRecord{Name: "Kamala"})
	require.NoError(t, err)

	third, err := store.CreateCow(ctx, models.CowRecord{Name: "Parvathi"})
	require.NoError(t, err)
	assert.Equal(t, "COW003", third.ID)
}

func TestCreateCowKeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	cow, err := store.CreateCow(ctx, models.CowRecord{ID: "COW042"})
	require.NoError(t, err)
	assert.Equal(t, "COW042", cow.ID)
}

func TestGetCowNotFound(t *testing.T) {
	store := newTestStore()

	_, err := store.GetCow(context.Background(), "COW999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListCowsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.CreateCow(ctx, models.CowRecord{Name: name})
		require.NoError(t, err)
	}

	cows, err := store.ListCows(ctx)
	require.NoError(t, err)
	require.Len(t, cows, 3)
	assert.Equal(t, "a", cows[0].Name)
	assert.Equal(t, "c", cows[2].Name)
}

func TestUpdateCowMergesPatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	created, err := store.CreateCow(ctx, models.CowRecord{
		Name:   "Lakshmi",
		Breed:  "Sahiwal",
		Weight: 450,
		Zone:   "Milking Area",
	})
	require.NoError(t, err)

	weight := 460.0
	updated, err := store.UpdateCow(ctx, created.ID, models.CowPatch{Weight: &weight})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 460.0, updated.Weight)
	assert.Equal(t, "Lakshmi", updated.Name)
	assert.Equal(t, "Sahiwal", updated.Breed)
	assert.Equal(t, "Milking Area", updated.Zone)

	_, err = store.UpdateCow(ctx, "COW999", models.CowPatch{Weight: &weight})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCowCascadesYield(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	cow, err := store.CreateCow(ctx, models.CowRecord{Name: "Lakshmi"})
	require.NoError(t, err)
	other, err := store.CreateCow(ctx, models.CowRecord{Name: "Kamala"})
	require.NoError(t, err)

	require.NoError(t, store.InsertYieldHistory(ctx, []models.YieldEntry{
		{CowID: cow.ID, Date: "2024-06-13", Yield: 11},
		{CowID: cow.ID, Date: "2024-06-14", Yield: 12},
		{CowID: other.ID, Date: "2024-06-14", Yield: 9},
	}))

	deleted, err := store.DeleteCow(ctx, cow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lakshmi", deleted.Name)

	entries, err := store.ListYield(ctx, cow.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	kept, err := store.ListYield(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	_, err = store.DeleteCow(ctx, cow.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateLocation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	cow, err := store.CreateCow(ctx, models.CowRecord{Name: "Lakshmi", Zone: "Rest Area"})
	require.NoError(t, err)

	updated, err := store.UpdateLocation(ctx, cow.ID, 11.02, 76.96)
	require.NoError(t, err)
	assert.Equal(t, 11.02, updated.Lat)
	assert.Equal(t, 76.96, updated.Lng)
	assert.Equal(t, "Rest Area", updated.Zone)

	_, err = store.UpdateLocation(ctx, "COW999", 0, 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAppendYieldDefaultsDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	entry, err := store.AppendYield(ctx, models.YieldEntry{CowID: "COW001", Yield: 10.5})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", entry.Date)

	explicit, err := store.AppendYield(ctx, models.YieldEntry{CowID: "COW001", Date: "2024-06-01", Yield: 9})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", explicit.Date)
}

func TestListYieldKeepsDuplicatesAndOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	// Two entries on the same date are both kept.
	_, err := store.AppendYield(ctx, models.YieldEntry{CowID: "COW001", Date: "2024-06-15", Yield: 5})
	require.NoError(t, err)
	_, err = store.AppendYield(ctx, models.YieldEntry{CowID: "COW001", Date: "2024-06-15", Yield: 6})
	require.NoError(t, err)

	entries, err := store.ListYield(ctx, "COW001")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 5.0, entries[0].Yield)
	assert.Equal(t, 6.0, entries[1].Yield)
}

func TestListYieldUnknownCowIsEmpty(t *testing.T) {
	entries, err := newTestStore().ListYield(context.Background(), "COW999")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSettingsMergePreservesFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	price := 50.0
	updated, err := store.UpdateSettings(ctx, models.SettingsPatch{MilkPricePerLiter: &price})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.MilkPricePerLiter)
	assert.Equal(t, "Smart Dairy Farm", updated.FarmName)
	assert.Equal(t, "Coimbatore, Tamil Nadu", updated.Location)
	assert.Equal(t, "INR", updated.Currency)

	stored, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestSaveDailyReport(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	require.NoError(t, store.SaveDailyReport(ctx, models.DailyReport{TotalCows: 3}))
	reports := store.DailyReports()
	require.Len(t, reports, 1)
	assert.Equal(t, 3, reports[0].TotalCows)
}
