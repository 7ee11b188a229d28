package herd

import (
	"context"
	"fmt"

	"github.com/herdtrack/herdtrack/internal/domain/models"
)

// demoHerd is the sample herd used for demos and local development.
var demoHerd = []models.CowRecord{
	{
		ID: "COW001", Name: "Lakshmi", RFIDTag: "RFID001", EarTagID: "TN-MAS-001",
		Breed: "Sahiwal", DOB: "2020-03-15", Weight: 450, LactationStage: models.LactationPeak,
		CurrentYield: 12, Temperature: 38.5, ActivityScore: 75, RuminationScore: 80,
		Zone: "Milking Area", Lat: 11.0168, Lng: 76.9558,
	},
	{
		ID: "COW002", Name: "Kamala", RFIDTag: "RFID002", EarTagID: "TN-MAS-002",
		Breed: "Gir", DOB: "2019-06-20", Weight: 400, LactationStage: models.LactationMid,
		CurrentYield: 10, Temperature: 38.3, ActivityScore: 85, RuminationScore: 88,
		Zone: "Feeding Area", Lat: 11.0172, Lng: 76.9562,
	},
	{
		ID: "COW003", Name: "Parvathi", RFIDTag: "RFID003", EarTagID: "TN-MAS-003",
		Breed: "Sahiwal", DOB: "2021-01-10", Weight: 420, LactationStage: models.LactationEarly,
		CurrentYield: 8, Temperature: 39.1, ActivityScore: 60, RuminationScore: 65,
		Zone: "Rest Area", Lat: 11.0165, Lng: 76.9555,
	},
}

// SeedDemoHerd creates the sample cows with seeded yield history. Skipped
// when the store already holds records.
func (s *Service) SeedDemoHerd(ctx context.Context) error {
	existing, err := s.herd.ListCows(ctx)
	if err != nil {
		return fmt.Errorf("check existing herd: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, cow := range demoHerd {
		if _, err := s.CreateCow(ctx, cow); err != nil {
			return fmt.Errorf("seed demo cow %s: %w", cow.ID, err)
		}
	}
	s.logger.Info("demo herd seeded")
	return nil
}
