// Package mongodb implements the repository contracts on MongoDB. It is the
// production backend; collections mirror the memory store's slices.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herdtrack/herdtrack/internal/domain/models"
	"github.com/herdtrack/herdtrack/internal/repository"
)

const (
	cowsCollection     = "cows"
	yieldCollection    = "yield_entries"
	settingsCollection = "farm_settings"
	reportsCollection  = "daily_reports"

	settingsDocID = "farm"
)

// Store is a MongoDB-backed implementation of the repository contracts.
type Store struct {
	client   *mongo.Client
	dbName   string
	defaults models.FarmSettings
	now      func() time.Time
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string, defaults models.FarmSettings) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client:   client,
		dbName:   dbName,
		defaults: defaults,
		now:      time.Now,
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// ListCows returns all records in insertion order. Sequential ids make the
// lexicographic _id sort the insertion order.
func (s *Store) ListCows(ctx context.Context) ([]models.CowRecord, error) {
	cursor, err := s.coll(cowsCollection).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cows: %w", err)
	}

	cows := []models.CowRecord{}
	if err := cursor.All(ctx, &cows); err != nil {
		return nil, fmt.Errorf("failed to decode cows: %w", err)
	}
	return cows, nil
}

// GetCow fetches one record by id.
func (s *Store) GetCow(ctx context.Context, id string) (models.CowRecord, error) {
	var cow models.CowRecord
	err := s.coll(cowsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&cow)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to get cow %s: %w", id, err)
	}
	return cow, nil
}

// CreateCow inserts the record, assigning the next sequential id from the
// current collection count when none was provided.
func (s *Store) CreateCow(ctx context.Context, cow models.CowRecord) (models.CowRecord, error) {
	if cow.ID == "" {
		count, err := s.coll(cowsCollection).CountDocuments(ctx, bson.D{})
		if err != nil {
			return models.CowRecord{}, fmt.Errorf("failed to count cows: %w", err)
		}
		cow.ID = fmt.Sprintf("COW%03d", count+1)
	}
	cow.LastUpdated = s.now()

	if _, err := s.coll(cowsCollection).InsertOne(ctx, cow); err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to insert cow: %w", err)
	}
	return cow, nil
}

// UpdateCow applies the patch as a $set and returns the updated record.
func (s *Store) UpdateCow(ctx context.Context, id string, patch models.CowPatch) (models.CowRecord, error) {
	set := patchToSet(patch)
	set["last_updated"] = s.now()

	var cow models.CowRecord
	err := s.coll(cowsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cow)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to update cow %s: %w", id, err)
	}
	return cow, nil
}

// DeleteCow removes the record, then its yield rows. The two steps are not
// transactional; the window between them is accepted for this system.
func (s *Store) DeleteCow(ctx context.Context, id string) (models.CowRecord, error) {
	var cow models.CowRecord
	err := s.coll(cowsCollection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&cow)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to delete cow %s: %w", id, err)
	}

	if _, err := s.coll(yieldCollection).DeleteMany(ctx, bson.M{"cow_id": id}); err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to cascade yield delete for %s: %w", id, err)
	}
	return cow, nil
}

// UpdateLocation sets only the coordinates plus the timestamp.
func (s *Store) UpdateLocation(ctx context.Context, id string, lat, lng float64) (models.CowRecord, error) {
	var cow models.CowRecord
	err := s.coll(cowsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lat": lat, "lng": lng, "last_updated": s.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cow)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CowRecord{}, fmt.Errorf("cow %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.CowRecord{}, fmt.Errorf("failed to update location for %s: %w", id, err)
	}
	return cow, nil
}

// ListYield returns all entries for the cow in insertion order.
func (s *Store) ListYield(ctx context.Context, cowID string) ([]models.YieldEntry, error) {
	cursor, err := s.coll(yieldCollection).Find(ctx, bson.M{"cow_id": cowID})
	if err != nil {
		return nil, fmt.Errorf("failed to list yield for %s: %w", cowID, err)
	}

	entries := []models.YieldEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode yield entries: %w", err)
	}
	return entries, nil
}

// AppendYield inserts the entry, defaulting the date to today.
func (s *Store) AppendYield(ctx context.Context, entry models.YieldEntry) (models.YieldEntry, error) {
	if entry.Date == "" {
		entry.Date = s.now().Format("2006-01-02")
	}
	if _, err := s.coll(yieldCollection).InsertOne(ctx, entry); err != nil {
		return models.YieldEntry{}, fmt.Errorf("failed to insert yield entry: %w", err)
	}
	return entry, nil
}

// InsertYieldHistory bulk-inserts seeded history rows.
func (s *Store) InsertYieldHistory(ctx context.Context, entries []models.YieldEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}
	if _, err := s.coll(yieldCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert yield history: %w", err)
	}
	return nil
}

// GetSettings returns the singleton settings document, or the configured
// defaults when none has been written yet.
func (s *Store) GetSettings(ctx context.Context) (models.FarmSettings, error) {
	var doc settingsDoc
	err := s.coll(settingsCollection).FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return s.defaults, nil
	}
	if err != nil {
		return models.FarmSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return doc.FarmSettings, nil
}

// UpdateSettings merges the patch over the stored settings (or the defaults)
// and upserts the result.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.FarmSettings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return models.FarmSettings{}, err
	}
	current.Apply(patch)

	_, err = s.coll(settingsCollection).ReplaceOne(ctx,
		bson.M{"_id": settingsDocID},
		settingsDoc{ID: settingsDocID, FarmSettings: current},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return models.FarmSettings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return current, nil
}

// SaveDailyReport persists a nightly snapshot.
func (s *Store) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := s.coll(reportsCollection).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}

type settingsDoc struct {
	ID                  string `bson:"_id"`
	models.FarmSettings `bson:",inline"`
}

func patchToSet(p models.CowPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.RFIDTag != nil {
		set["rfid_tag"] = *p.RFIDTag
	}
	if p.EarTagID != nil {
		set["ear_tag_id"] = *p.EarTagID
	}
	if p.Breed != nil {
		set["breed"] = *p.Breed
	}
	if p.DOB != nil {
		set["dob"] = *p.DOB
	}
	if p.Weight != nil {
		set["weight"] = *p.Weight
	}
	if p.LactationStage != nil {
		set["lactation_stage"] = *p.LactationStage
	}
	if p.CurrentYield != nil {
		set["current_yield"] = *p.CurrentYield
	}
	if p.Temperature != nil {
		set["temperature"] = *p.Temperature
	}
	if p.ActivityScore != nil {
		set["activity_score"] = *p.ActivityScore
	}
	if p.RuminationScore != nil {
		set["rumination_score"] = *p.RuminationScore
	}
	if p.Zone != nil {
		set["zone"] = *p.Zone
	}
	if p.Lat != nil {
		set["lat"] = *p.Lat
	}
	if p.Lng != nil {
		set["lng"] = *p.Lng
	}
	return set
}
