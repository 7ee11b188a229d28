// Package scoring holds the pure derived-metric computations. Nothing here
// touches storage; every function takes a record and returns new values.
package scoring

import (
	"math"
	"time"

	"github.com/herdtrack/herdtrack/internal/domain/models"
)

const dateLayout = "2006-01-02"

// FeedPricing is the per-deployment cost table injected into the scoring
// functions. Unit costs are per kg/day, milk price per liter.
type FeedPricing struct {
	LowYieldThreshold float64
	GreenFodderCost   float64
	DryFodderCost     float64
	ConcentrateCost   float64
	MineralCost       float64
	MilkPricePerLiter float64
}

// DefaultPricing is the INR-scale table used when no overrides are configured.
func DefaultPricing() FeedPricing {
	return FeedPricing{
		LowYieldThreshold: 5,
		GreenFodderCost:   5,
		DryFodderCost:     8,
		ConcentrateCost:   25,
		MineralCost:       50,
		MilkPricePerLiter: 45,
	}
}

// mineralsPerDay is the fixed mineral ration in kg/day.
const mineralsPerDay = 0.15

// HealthScore computes the 0-100 health score for a cow. Penalties stack
// additively; the result never goes below zero.
func HealthScore(c models.CowRecord, p FeedPricing) int {
	score := 100

	switch {
	case c.Temperature > 39.5 || c.Temperature < 38.0:
		score -= 20
	case c.Temperature > 39.0 || c.Temperature < 38.2:
		score -= 10
	}

	if c.ActivityScore < 60 {
		score -= 15
	} else if c.ActivityScore < 70 {
		score -= 8
	}

	if c.RuminationScore < 65 {
		score -= 15
	} else if c.RuminationScore < 75 {
		score -= 8
	}

	if c.CurrentYield < p.LowYieldThreshold {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// ClassifyStatus maps a health score to the coarse status used on the
// dashboard: healthy >= 80, warning >= 60, alert below.
func ClassifyStatus(healthScore int) models.Status {
	switch {
	case healthScore >= 80:
		return models.StatusHealthy
	case healthScore >= 60:
		return models.StatusWarning
	default:
		return models.StatusAlert
	}
}

// FeedRequirements computes the daily feed plan and profit estimate for a
// cow. Fodder quantities are rounded to 2 decimals before they enter the cost
// formula, matching the reference arithmetic.
func FeedRequirements(c models.CowRecord, p FeedPricing) models.FeedRequirements {
	baseRequirement := c.Weight * 0.025
	yieldMultiplier := 1 + c.CurrentYield/50

	greenFodder := Round2(baseRequirement * yieldMultiplier * 0.5)
	dryFodder := Round2(baseRequirement * yieldMultiplier * 0.3)
	concentrate := Round2(c.CurrentYield * 0.4)

	totalFeedCost := Round2(greenFodder*p.GreenFodderCost +
		dryFodder*p.DryFodderCost +
		concentrate*p.ConcentrateCost +
		mineralsPerDay*p.MineralCost)
	expectedMilkRevenue := Round2(c.CurrentYield * p.MilkPricePerLiter)

	return models.FeedRequirements{
		GreenFodder:         greenFodder,
		DryFodder:           dryFodder,
		Concentrate:         concentrate,
		Minerals:            mineralsPerDay,
		TotalFeedCost:       totalFeedCost,
		ExpectedMilkRevenue: expectedMilkRevenue,
		DailyProfit:         Round2(expectedMilkRevenue - totalFeedCost),
	}
}

// Age reports whole calendar years between the birth year and now. Month and
// day are ignored, so every cow ages up on January 1. Unparseable dates
// report zero.
func Age(dob string, now time.Time) int {
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if age < 0 {
		return 0
	}
	return age
}

// HealthAlerts returns the textual alerts for a cow in presentation order:
// temperature high, temperature low, activity, rumination, yield.
func HealthAlerts(c models.CowRecord, p FeedPricing) []string {
	alerts := []string{}
	if c.Temperature > 39.5 {
		alerts = append(alerts, "High fever detected")
	}
	if c.Temperature < 38 {
		alerts = append(alerts, "Low temperature")
	}
	if c.ActivityScore < 60 {
		alerts = append(alerts, "Low activity")
	}
	if c.RuminationScore < 65 {
		alerts = append(alerts, "Poor rumination")
	}
	if c.CurrentYield < p.LowYieldThreshold {
		alerts = append(alerts, "Low milk yield")
	}
	return alerts
}

// Enrich combines the scoring functions into the read-side detail view.
func Enrich(c models.CowRecord, p FeedPricing, now time.Time) models.CowDetails {
	score := HealthScore(c, p)
	return models.CowDetails{
		CowRecord:        c,
		HealthScore:      score,
		Age:              Age(c.DOB, now),
		FeedRequirements: FeedRequirements(c, p),
		Status:           ClassifyStatus(score),
	}
}

// Round2 rounds half away from zero to 2 decimal places. The nudge keeps
// decimal halves that sit just under the boundary in binary (4.185 is stored
// as 4.18499...) rounding away from zero.
func Round2(v float64) float64 {
	return math.Round((v+math.Copysign(1e-9, v))*100) / 100
}
