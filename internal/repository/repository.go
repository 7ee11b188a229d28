// Package repository defines the storage contracts the services depend on.
// Backends live in subpackages (memory for tests and zero-config runs,
// mongodb for production).
package repository

import (
	"context"
	"errors"

	"github.com/herdtrack/herdtrack/internal/domain/models"
)

// ErrNotFound indicates an id-keyed operation referenced a record that does
// not exist. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// HerdRepository owns the cow collection and its yield history. Every
// mutation stamps lastUpdated; deleting a cow cascades to its yield rows.
type HerdRepository interface {
	ListCows(ctx context.Context) ([]models.CowRecord, error)
	GetCow(ctx context.Context, id string) (models.CowRecord, error)
	// CreateCow assigns a sequential COW%03d id when the record carries none
	// and appends the record in insertion order.
	CreateCow(ctx context.Context, cow models.CowRecord) (models.CowRecord, error)
	UpdateCow(ctx context.Context, id string, patch models.CowPatch) (models.CowRecord, error)
	DeleteCow(ctx context.Context, id string) (models.CowRecord, error)
	UpdateLocation(ctx context.Context, id string, lat, lng float64) (models.CowRecord, error)

	ListYield(ctx context.Context, cowID string) ([]models.YieldEntry, error)
	AppendYield(ctx context.Context, entry models.YieldEntry) (models.YieldEntry, error)
	InsertYieldHistory(ctx context.Context, entries []models.YieldEntry) error
}

// SettingsRepository holds the singleton farm settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.FarmSettings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.FarmSettings, error)
}

// ReportRepository persists the nightly dashboard snapshots.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}
