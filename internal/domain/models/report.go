package models

import "time"

// DashboardStats is the farm-wide aggregate served on the dashboard.
type DashboardStats struct {
	TotalCows            int     `json:"totalCows"`
	LactatingCows        int     `json:"lactatingCows"`
	TotalMilkYield       float64 `json:"totalMilkYield"`
	TotalFeedRequired    float64 `json:"totalFeedRequired"`
	HealthAlerts         int     `json:"healthAlerts"`
	EstimatedDailyProfit float64 `json:"estimatedDailyProfit"`
}

// DailyReport is a dated snapshot of the dashboard aggregates, persisted by
// the nightly scheduler run.
type DailyReport struct {
	Date                 time.Time `bson:"date" json:"date"`
	TotalCows            int       `bson:"total_cows" json:"totalCows"`
	LactatingCows        int       `bson:"lactating_cows" json:"lactatingCows"`
	TotalMilkYield       float64   `bson:"total_milk_yield" json:"totalMilkYield"`
	TotalFeedRequired    float64   `bson:"total_feed_required" json:"totalFeedRequired"`
	HealthAlerts         int       `bson:"health_alerts" json:"healthAlerts"`
	EstimatedDailyProfit float64   `bson:"estimated_daily_profit" json:"estimatedDailyProfit"`
	CreatedAt            time.Time `bson:"created_at" json:"createdAt"`
}
