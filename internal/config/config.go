package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Feed      FeedConfig
	Farm      FarmConfig
	Reporting ReportingConfig
	Notify    NotifyConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port         string
	SeedDemoHerd bool
}

// MongoDBConfig holds settings for MongoDB. An empty URI selects the
// in-memory backend.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// FeedConfig is the deployment's feed-cost table and low-yield threshold.
// Costs are per kg, the milk price per liter.
type FeedConfig struct {
	LowYieldThreshold float64
	GreenFodderCost   float64
	DryFodderCost     float64
	ConcentrateCost   float64
	MineralCost       float64
	MilkPricePerLiter float64
}

// FarmConfig provides the default farm settings used until the settings
// store is first written.
type FarmConfig struct {
	Name      string
	Location  string
	CenterLat float64
	CenterLng float64
	Currency  string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
}

// NotifyConfig configures the alert webhook. An empty URL disables it.
type NotifyConfig struct {
	WebhookURL string
}

// SheetsConfig contains configuration required to export reports to Google
// Sheets. An empty credentials path disables the exporter.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getenvWithDefault("APP_PORT", "8080"),
			SeedDemoHerd: getenvBool("SEED_DEMO_HERD", false),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "herdtrack"),
		},
		Feed: FeedConfig{
			LowYieldThreshold: getenvFloat("LOW_YIELD_THRESHOLD", 5),
			GreenFodderCost:   getenvFloat("FEED_COST_GREEN", 5),
			DryFodderCost:     getenvFloat("FEED_COST_DRY", 8),
			ConcentrateCost:   getenvFloat("FEED_COST_CONCENTRATE", 25),
			MineralCost:       getenvFloat("FEED_COST_MINERAL", 50),
			MilkPricePerLiter: getenvFloat("MILK_PRICE_PER_LITER", 45),
		},
		Farm: FarmConfig{
			Name:      getenvWithDefault("FARM_NAME", "Smart Dairy Farm"),
			Location:  getenvWithDefault("FARM_LOCATION", "Coimbatore, Tamil Nadu"),
			CenterLat: getenvFloat("FARM_CENTER_LAT", 11.0168),
			CenterLng: getenvFloat("FARM_CENTER_LNG", 76.9558),
			Currency:  getenvWithDefault("FARM_CURRENCY", "INR"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	switch {
	case c.Feed.GreenFodderCost <= 0:
		return errors.New("FEED_COST_GREEN must be positive")
	case c.Feed.DryFodderCost <= 0:
		return errors.New("FEED_COST_DRY must be positive")
	case c.Feed.ConcentrateCost <= 0:
		return errors.New("FEED_COST_CONCENTRATE must be positive")
	case c.Feed.MineralCost <= 0:
		return errors.New("FEED_COST_MINERAL must be positive")
	case c.Feed.MilkPricePerLiter <= 0:
		return errors.New("MILK_PRICE_PER_LITER must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when sheets export is enabled")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
