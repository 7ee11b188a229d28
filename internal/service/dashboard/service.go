// Package dashboard folds the scoring functions over the whole herd into the
// farm-wide statistics.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/service/scoring"
)

// PricingSource resolves the effective pricing table. Satisfied by the herd
// service.
type PricingSource interface {
	Pricing(ctx context.Context) scoring.FeedPricing
}

// Service computes the dashboard aggregates.
type Service struct {
	herd    repository.HerdRepository
	pricing PricingSource
	logger  *zap.Logger
}

// NewService wires a dashboard service instance.
func NewService(herdRepo repository.HerdRepository, pricing PricingSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{herd: herdRepo, pricing: pricing, logger: logger}
}

// Stats recomputes every derived metric per cow and folds them into totals.
// An empty herd produces all-zero stats.
func (s *Service) Stats(ctx context.Context) (models.DashboardStats, error) {
	cows, err := s.herd.ListCows(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("list cows for stats: %w", err)
	}

	pricing := s.pricing.Pricing(ctx)
	return ComputeStats(cows, pricing), nil
}

// ComputeStats is the pure aggregation over a cow collection.
func ComputeStats(cows []models.CowRecord, pricing scoring.FeedPricing) models.DashboardStats {
	stats := models.DashboardStats{TotalCows: len(cows)}

	var totalYield, totalFeed, totalProfit float64
	for _, cow := range cows {
		if cow.LactationStage != models.LactationDry {
			stats.LactatingCows++
		}
		totalYield += cow.CurrentYield

		feed := scoring.FeedRequirements(cow, pricing)
		totalFeed += feed.GreenFodder + feed.DryFodder + feed.Concentrate
		totalProfit += feed.DailyProfit

		if scoring.HealthScore(cow, pricing) < 60 {
			stats.HealthAlerts++
		}
	}

	stats.TotalMilkYield = scoring.Round2(totalYield)
	stats.TotalFeedRequired = scoring.Round2(totalFeed)
	stats.EstimatedDailyProfit = scoring.Round2(totalProfit)
	return stats
}

// Snapshot turns the current stats into a dated report for persistence.
func (s *Service) Snapshot(ctx context.Context, now time.Time) (models.DailyReport, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return models.DailyReport{}, err
	}

	return models.DailyReport{
		Date:                 now.Truncate(24 * time.Hour),
		TotalCows:            stats.TotalCows,
		LactatingCows:        stats.LactatingCows,
		TotalMilkYield:       stats.TotalMilkYield,
		TotalFeedRequired:    stats.TotalFeedRequired,
		HealthAlerts:         stats.HealthAlerts,
		EstimatedDailyProfit: stats.EstimatedDailyProfit,
		CreatedAt:            now,
	}, nil
}
