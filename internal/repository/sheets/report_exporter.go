// Package sheets exports daily reports to a Google Sheet so the farm can keep
// a shareable history outside the database. Optional; only wired when
// credentials are configured.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/herdtrack/herdtrack/internal/config"
	"github.com/herdtrack/herdtrack/internal/domain/models"
)

const reportWriteRange = "DailyReports!A:H"

// Exporter appends report rows to a spreadsheet.
type Exporter interface {
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// SheetExporter implements Exporter using the official Google Sheets API.
type SheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewSheetExporter builds a Google Sheets backed exporter instance.
func NewSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyReport appends one row per snapshot to the report range.
func (e *SheetExporter) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	row := []interface{}{
		report.Date.Format("2006-01-02"),
		report.TotalCows,
		report.LactatingCows,
		report.TotalMilkYield,
		report.TotalFeedRequired,
		report.HealthAlerts,
		report.EstimatedDailyProfit,
		report.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, reportWriteRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", reportWriteRange, err)
	}

	e.logger.Debug("daily report exported", zap.String("range", reportWriteRange))
	return nil
}
