package models

import "time"

// Status is the coarse health classification derived from the health score.
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusWarning Status = "warning"
	StatusAlert   Status = "alert"
)

// Lactation stages recognised by the dashboard. The field is free-form on
// input; only "Dry" carries meaning for aggregation.
const (
	LactationPeak  = "Peak"
	LactationMid   = "Mid"
	LactationEarly = "Early"
	LactationLate  = "Late"
	LactationDry   = "Dry"
)

// CowRecord is one tracked animal. Numeric telemetry is stored as received;
// out-of-range values only affect derived output, never storage.
type CowRecord struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	RFIDTag         string    `json:"rfidTag" bson:"rfid_tag"`
	EarTagID        string    `json:"earTagId" bson:"ear_tag_id"`
	Breed           string    `json:"breed" bson:"breed"`
	DOB             string    `json:"dob" bson:"dob"` // YYYY-MM-DD
	Weight          float64   `json:"weight" bson:"weight"`
	LactationStage  string    `json:"lactationStage" bson:"lactation_stage"`
	CurrentYield    float64   `json:"currentYield" bson:"current_yield"`
	Temperature     float64   `json:"temperature" bson:"temperature"`
	ActivityScore   float64   `json:"activityScore" bson:"activity_score"`
	RuminationScore float64   `json:"ruminationScore" bson:"rumination_score"`
	Zone            string    `json:"zone" bson:"zone"`
	Lat             float64   `json:"lat" bson:"lat"`
	Lng             float64   `json:"lng" bson:"lng"`
	LastUpdated     time.Time `json:"lastUpdated" bson:"last_updated"`
}

// CowPatch carries a partial update. Nil fields keep the stored value, set
// fields win (shallow merge). ID is never patchable.
type CowPatch struct {
	Name            *string  `json:"name"`
	RFIDTag         *string  `json:"rfidTag"`
	EarTagID        *string  `json:"earTagId"`
	Breed           *string  `json:"breed"`
	DOB             *string  `json:"dob"`
	Weight          *float64 `json:"weight"`
	LactationStage  *string  `json:"lactationStage"`
	CurrentYield    *float64 `json:"currentYield"`
	Temperature     *float64 `json:"temperature"`
	ActivityScore   *float64 `json:"activityScore"`
	RuminationScore *float64 `json:"ruminationScore"`
	Zone            *string  `json:"zone"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
}

// Apply merges the patch over the record in place.
func (c *CowRecord) Apply(p CowPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.RFIDTag != nil {
		c.RFIDTag = *p.RFIDTag
	}
	if p.EarTagID != nil {
		c.EarTagID = *p.EarTagID
	}
	if p.Breed != nil {
		c.Breed = *p.Breed
	}
	if p.DOB != nil {
		c.DOB = *p.DOB
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.LactationStage != nil {
		c.LactationStage = *p.LactationStage
	}
	if p.CurrentYield != nil {
		c.CurrentYield = *p.CurrentYield
	}
	if p.Temperature != nil {
		c.Temperature = *p.Temperature
	}
	if p.ActivityScore != nil {
		c.ActivityScore = *p.ActivityScore
	}
	if p.RuminationScore != nil {
		c.RuminationScore = *p.RuminationScore
	}
	if p.Zone != nil {
		c.Zone = *p.Zone
	}
	if p.Lat != nil {
		c.Lat = *p.Lat
	}
	if p.Lng != nil {
		c.Lng = *p.Lng
	}
}

// YieldEntry is one recorded milk yield for a cow. Multiple entries per cow
// per date are allowed; the store never deduplicates.
type YieldEntry struct {
	CowID string  `json:"cowId" bson:"cow_id"`
	Date  string  `json:"date" bson:"date"` // YYYY-MM-DD
	Yield float64 `json:"yield" bson:"yield"`
}

// FeedRequirements holds the computed daily feed plan and the profit estimate
// derived from it. Quantities are kg/day, money in the configured currency.
type FeedRequirements struct {
	GreenFodder         float64 `json:"greenFodder"`
	DryFodder           float64 `json:"dryFodder"`
	Concentrate         float64 `json:"concentrate"`
	Minerals            float64 `json:"minerals"`
	TotalFeedCost       float64 `json:"totalFeedCost"`
	ExpectedMilkRevenue float64 `json:"expectedMilkRevenue"`
	DailyProfit         float64 `json:"dailyProfit"`
}

// CowDetails is a CowRecord enriched with the derived metrics computed on
// every read. Never persisted.
type CowDetails struct {
	CowRecord
	HealthScore      int              `json:"healthScore"`
	Age              int              `json:"age"`
	FeedRequirements FeedRequirements `json:"feedRequirements"`
	Status           Status           `json:"status"`
}

// HealthReport is the per-cow health detail served to the presentation layer.
type HealthReport struct {
	HealthScore     int      `json:"healthScore"`
	Temperature     float64  `json:"temperature"`
	ActivityScore   float64  `json:"activityScore"`
	RuminationScore float64  `json:"ruminationScore"`
	Alerts          []string `json:"alerts"`
	Status          Status   `json:"status"`
}
