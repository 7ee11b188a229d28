package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/config"
	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
	"github.com/herdtrack/herdtrack/internal/repository/sheets"
	"github.com/herdtrack/herdtrack/internal/service/dashboard"
	"github.com/herdtrack/herdtrack/internal/service/herd"
	"github.com/herdtrack/herdtrack/pkg/clients/notify"
)

const dateLayout = "2006-01-02"

// Scheduler runs the nightly dashboard snapshot: persist a daily report,
// optionally export it to Sheets and fan out the active health alerts.
type Scheduler struct {
	cron         *cron.Cron
	herdSvc      *herd.Service
	dashboardSvc *dashboard.Service
	reports      repository.ReportRepository
	exporter     sheets.Exporter
	notifier     notify.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a scheduler instance. Exporter and notifier are
// optional; nil disables the corresponding step.
func NewScheduler(cfg config.Config, herdSvc *herd.Service, dashboardSvc *dashboard.Service, reports repository.ReportRepository, exporter sheets.Exporter, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		herdSvc:      herdSvc,
		dashboardSvc: dashboardSvc,
		reports:      reports,
		exporter:     exporter,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailySnapshot)
	if err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshot() {
	s.logger.Info("generating daily snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.dashboardSvc.Snapshot(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to build daily snapshot", zap.Error(err))
		return
	}

	if err := s.reports.SaveDailyReport(ctx, report); err != nil {
		s.logger.Error("failed to persist daily report", zap.Error(err))
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to export daily report", zap.Error(err))
		}
	}

	if s.notifier != nil && report.HealthAlerts > 0 {
		s.sendAlertSummary(ctx, report)
	}
}

func (s *Scheduler) sendAlertSummary(ctx context.Context, report models.DailyReport) {
	details, err := s.herdSvc.ListCows(ctx)
	if err != nil {
		s.logger.Error("failed to list cows for alert summary", zap.Error(err))
		return
	}

	var cowAlerts []notify.CowAlert
	for _, cow := range details {
		if cow.Status != models.StatusAlert {
			continue
		}
		health, err := s.herdSvc.HealthDetail(ctx, cow.ID)
		if err != nil {
			s.logger.Warn("failed to load health detail", zap.String("cow_id", cow.ID), zap.Error(err))
			continue
		}
		cowAlerts = append(cowAlerts, notify.CowAlert{
			CowID:  cow.ID,
			Name:   cow.Name,
			Alerts: health.Alerts,
		})
	}

	req := notify.AlertSummaryRequest{
		FarmName:     s.cfg.Farm.Name,
		Date:         report.Date.Format(dateLayout),
		HealthAlerts: report.HealthAlerts,
		Cows:         cowAlerts,
	}

	if err := s.notifier.SendAlertSummary(ctx, req); err != nil {
		s.logger.Error("failed to send alert summary", zap.Error(err))
	} else {
		s.logger.Info("alert summary sent", zap.Int("alerts", report.HealthAlerts))
	}
}
