// Package memory implements the repository contracts with in-process state.
// It backs tests and zero-config deployments; a single mutex serializes all
// operations, which is all the single-writer model requires.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
)

// Store holds every collection behind one mutex.
type Store struct {
	mu       sync.Mutex
	cows     []models.CowRecord
	yields   []models.YieldEntry
	settings models.FarmSettings
	reports  []models.DailyReport
	now      func() time.Time
}

// New builds an empty store seeded with the provided default settings.
func New(defaults models.FarmSettings) *Store {
	return &Store{
		settings: defaults,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source. Test hook.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// ListCows returns all records in insertion order.
func (s *Store) ListCows(_ context.Context) ([]models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CowRecord, len(s.cows))
	copy(out, s.cows)
	return out, nil
}

// GetCow returns the record with the exact id.
func (s *Store) GetCow(_ context.Context, id string) (models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cows {
		if c.ID == id {
			return c, nil
		}
	}
	return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
}

// CreateCow appends the record, assigning the next sequential id when none
// was provided and stamping lastUpdated.
func (s *Store) CreateCow(_ context.Context, cow models.CowRecord) (models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cow.ID == "" {
		cow.ID = fmt.Sprintf("COW%03d", len(s.cows)+1)
	}
	cow.LastUpdated = s.now()
	s.cows = append(s.cows, cow)
	return cow, nil
}

// UpdateCow shallow-merges the patch over the stored record and restamps
// lastUpdated. The id is never changed.
func (s *Store) UpdateCow(_ context.Context, id string, patch models.CowPatch) (models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cows {
		if s.cows[i].ID == id {
			s.cows[i].Apply(patch)
			s.cows[i].LastUpdated = s.now()
			return s.cows[i], nil
		}
	}
	return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
}

// DeleteCow removes the record and every yield entry owned by it.
func (s *Store) DeleteCow(_ context.Context, id string) (models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cows {
		if s.cows[i].ID != id {
			continue
		}
		deleted := s.cows[i]
		s.cows = append(s.cows[:i], s.cows[i+1:]...)

		kept := s.yields[:0]
		for _, y := range s.yields {
			if y.CowID != id {
				kept = append(kept, y)
			}
		}
		s.yields = kept
		return deleted, nil
	}
	return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
}

// UpdateLocation replaces only the coordinates and restamps lastUpdated.
func (s *Store) UpdateLocation(_ context.Context, id string, lat, lng float64) (models.CowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cows {
		if s.cows[i].ID == id {
			s.cows[i].Lat = lat
			s.cows[i].Lng = lng
			s.cows[i].LastUpdated = s.now()
			return s.cows[i], nil
		}
	}
	return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
}

// ListYield returns every entry for the cow in insertion order. An unknown id
// yields an empty slice, matching the reference behavior.
func (s *Store) ListYield(_ context.Context, cowID string) ([]models.YieldEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.YieldEntry{}
	for _, y := range s.yields {
		if y.CowID == cowID {
			out = append(out, y)
		}
	}
	return out, nil
}

// AppendYield stores the entry, defaulting the date to today.
func (s *Store) AppendYield(_ context.Context, entry models.YieldEntry) (models.YieldEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Date == "" {
		entry.Date = s.now().Format("2006-01-02")
	}
	s.yields = append(s.yields, entry)
	return entry, nil
}

// InsertYieldHistory bulk-appends seeded history rows.
func (s *Store) InsertYieldHistory(_ context.Context, entries []models.YieldEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.yields = append(s.yields, entries...)
	return nil
}

// GetSettings returns the current settings.
func (s *Store) GetSettings(_ context.Context) (models.FarmSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

// UpdateSettings merges the patch over the stored settings.
func (s *Store) UpdateSettings(_ context.Context, patch models.SettingsPatch) (models.FarmSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Apply(patch)
	return s.settings, nil
}

// SaveDailyReport retains the snapshot in memory.
func (s *Store) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)
	return nil
}

// DailyReports returns the retained snapshots. Test hook.
func (s *Store) DailyReports() []models.DailyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DailyReport, len(s.reports))
	copy(out, s.reports)
	return out
}
