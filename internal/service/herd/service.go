// Package herd orchestrates the record store and the scoring functions: CRUD
// on cow records, derived-metric enrichment on reads, yield history and the
// per-cow health detail.
package herd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/config"
	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/service/scoring"
)

const (
	dateLayout       = "2006-01-02"
	defaultBaseYield = 8
	seedHistoryDays  = 30
)

// YieldSeeder produces the initial yield history for a newly created cow.
type YieldSeeder func(cowID string, baseYield float64, now time.Time) []models.YieldEntry

// JitterSeeder generates the default demo history: one entry per day for the
// last 30 days, each jittered around the base yield by [-1, +1).
func JitterSeeder(cowID string, baseYield float64, now time.Time) []models.YieldEntry {
	entries := make([]models.YieldEntry, 0, seedHistoryDays)
	for i := 0; i < seedHistoryDays; i++ {
		entries = append(entries, models.YieldEntry{
			CowID: cowID,
			Date:  now.AddDate(0, 0, -(seedHistoryDays - 1 - i)).Format(dateLayout),
			Yield: baseYield - 1 + rand.Float64()*2,
		})
	}
	return entries
}

// NopSeeder is the empty-history policy.
func NopSeeder(string, float64, time.Time) []models.YieldEntry { return nil }

// Service implements the herd operations.
type Service struct {
	herd     repository.HerdRepository
	settings repository.SettingsRepository
	feed     config.FeedConfig
	seeder   YieldSeeder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a herd service with the default jitter seeder.
func NewService(herdRepo repository.HerdRepository, settingsRepo repository.SettingsRepository, feed config.FeedConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		herd:     herdRepo,
		settings: settingsRepo,
		feed:     feed,
		seeder:   JitterSeeder,
		logger:   logger,
		now:      time.Now,
	}
}

// WithSeeder overrides the yield seeding strategy.
func (s *Service) WithSeeder(seeder YieldSeeder) *Service {
	s.seeder = seeder
	return s
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Pricing resolves the effective pricing table: the configured cost table
// with the milk price taken from the farm settings when one is set.
func (s *Service) Pricing(ctx context.Context) scoring.FeedPricing {
	p := scoring.FeedPricing{
		LowYieldThreshold: s.feed.LowYieldThreshold,
		GreenFodderCost:   s.feed.GreenFodderCost,
		DryFodderCost:     s.feed.DryFodderCost,
		ConcentrateCost:   s.feed.ConcentrateCost,
		MineralCost:       s.feed.MineralCost,
		MilkPricePerLiter: s.feed.MilkPricePerLiter,
	}

	if s.settings != nil {
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			s.logger.Warn("failed to load settings, using configured milk price", zap.Error(err))
		} else if settings.MilkPricePerLiter > 0 {
			p.MilkPricePerLiter = settings.MilkPricePerLiter
		}
	}
	return p
}

// ListCows returns every record enriched with its derived metrics.
func (s *Service) ListCows(ctx context.Context) ([]models.CowDetails, error) {
	cows, err := s.herd.ListCows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cows: %w", err)
	}

	pricing := s.Pricing(ctx)
	now := s.now()

	details := make([]models.CowDetails, 0, len(cows))
	for _, cow := range cows {
		details = append(details, scoring.Enrich(cow, pricing, now))
	}
	return details, nil
}

// GetCow returns one record enriched with its derived metrics.
func (s *Service) GetCow(ctx context.Context, id string) (models.CowDetails, error) {
	cow, err := s.herd.GetCow(ctx, id)
	if err != nil {
		return models.CowDetails{}, err
	}
	return scoring.Enrich(cow, s.Pricing(ctx), s.now()), nil
}

// CreateCow stores the record and seeds its initial yield history via the
// configured seeding strategy.
func (s *Service) CreateCow(ctx context.Context, cow models.CowRecord) (models.CowRecord, error) {
	created, err := s.herd.CreateCow(ctx, cow)
	if err != nil {
		return models.CowRecord{}, fmt.Errorf("create cow: %w", err)
	}

	baseYield := created.CurrentYield
	if baseYield == 0 {
		baseYield = defaultBaseYield
	}

	if history := s.seeder(created.ID, baseYield, s.now()); len(history) > 0 {
		if err := s.herd.InsertYieldHistory(ctx, history); err != nil {
			s.logger.Warn("failed to seed yield history", zap.String("cow_id", created.ID), zap.Error(err))
		}
	}

	s.logger.Info("cow created", zap.String("cow_id", created.ID))
	return created, nil
}

// UpdateCow shallow-merges the patch over the stored record.
func (s *Service) UpdateCow(ctx context.Context, id string, patch models.CowPatch) (models.CowRecord, error) {
	return s.herd.UpdateCow(ctx, id, patch)
}

// DeleteCow removes the record and its yield history.
func (s *Service) DeleteCow(ctx context.Context, id string) (models.CowRecord, error) {
	deleted, err := s.herd.DeleteCow(ctx, id)
	if err != nil {
		return models.CowRecord{}, err
	}
	s.logger.Info("cow deleted", zap.String("cow_id", id))
	return deleted, nil
}

// UpdateLocation moves the cow to new coordinates.
func (s *Service) UpdateLocation(ctx context.Context, id string, lat, lng float64) (models.CowRecord, error) {
	return s.herd.UpdateLocation(ctx, id, lat, lng)
}

// ListYield returns the yield history for a cow.
func (s *Service) ListYield(ctx context.Context, cowID string) ([]models.YieldEntry, error) {
	return s.herd.ListYield(ctx, cowID)
}

// RecordYield appends a yield entry for the cow, defaulting the date to
// today. The cow id from the route wins over any id in the payload.
func (s *Service) RecordYield(ctx context.Context, cowID string, entry models.YieldEntry) (models.YieldEntry, error) {
	entry.CowID = cowID
	return s.herd.AppendYield(ctx, entry)
}

// FeedRequirements computes the daily feed plan for one cow.
func (s *Service) FeedRequirements(ctx context.Context, id string) (models.FeedRequirements, error) {
	cow, err := s.herd.GetCow(ctx, id)
	if err != nil {
		return models.FeedRequirements{}, err
	}
	return scoring.FeedRequirements(cow, s.Pricing(ctx)), nil
}

// HealthDetail builds the per-cow health report: score, raw telemetry, the
// ordered alert strings and the status classification.
func (s *Service) HealthDetail(ctx context.Context, id string) (models.HealthReport, error) {
	cow, err := s.herd.GetCow(ctx, id)
	if err != nil {
		return models.HealthReport{}, err
	}

	pricing := s.Pricing(ctx)
	score := scoring.HealthScore(cow, pricing)

	return models.HealthReport{
		HealthScore:     score,
		Temperature:     cow.Temperature,
		ActivityScore:   cow.ActivityScore,
		RuminationScore: cow.RuminationScore,
		Alerts:          scoring.HealthAlerts(cow, pricing),
		Status:          scoring.ClassifyStatus(score),
	}, nil
}
