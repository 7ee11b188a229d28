package models

// FarmSettings is the singleton farm configuration record.
type FarmSettings struct {
	FarmName          string  `json:"farmName" bson:"farm_name"`
	Location          string  `json:"location" bson:"location"`
	CenterLat         float64 `json:"centerLat" bson:"center_lat"`
	CenterLng         float64 `json:"centerLng" bson:"center_lng"`
	MilkPricePerLiter float64 `json:"milkPricePerLiter" bson:"milk_price_per_liter"`
	Currency          string  `json:"currency" bson:"currency"`
}

// SettingsPatch is a partial settings update; nil fields retain the stored
// value.
type SettingsPatch struct {
	FarmName          *string  `json:"farmName"`
	Location          *string  `json:"location"`
	CenterLat         *float64 `json:"centerLat"`
	CenterLng         *float64 `json:"centerLng"`
	MilkPricePerLiter *float64 `json:"milkPricePerLiter"`
	Currency          *string  `json:"currency"`
}

// Apply merges the patch over the settings in place.
func (s *FarmSettings) Apply(p SettingsPatch) {
	if p.FarmName != nil {
		s.FarmName = *p.FarmName
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.CenterLat != nil {
		s.CenterLat = *p.CenterLat
	}
	if p.CenterLng != nil {
		s.CenterLng = *p.CenterLng
	}
	if p.MilkPricePerLiter != nil {
		s.MilkPricePerLiter = *p.MilkPricePerLiter
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
}
