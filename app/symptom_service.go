package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"flarelog/models"
	"flarelog/ports"
)

// SymptomService wraps the symptom repository and attaches a weather
// snapshot at save time when coordinates are provided. A failed lookup
// never blocks the save; the entry simply has no weather.
type SymptomService struct {
	repo    ports.SymptomRepository
	weather ports.WeatherPort
}

// NewSymptomService creates the service
func NewSymptomService(repo ports.SymptomRepository, weather ports.WeatherPort) *SymptomService {
	return &SymptomService{repo: repo, weather: weather}
}

// Save stores the day's entry, overwriting any existing entry for that
// date. When lat/lon are given and the record carries no snapshot yet, the
// current conditions are fetched and attached. Snapshots are immutable once
// attached; an overwrite with a snapshot already present keeps it.
func (s *SymptomService) Save(ctx context.Context, record *models.SymptomRecord, lat, lon *float64) error {
	if record.Weather == nil && lat != nil && lon != nil && s.weather != nil {
		snapshot, err := s.weather.Current(ctx, *lat, *lon)
		if err != nil {
			log.Printf("[SymptomService] Weather lookup failed, saving entry without snapshot: %v", err)
		} else {
			record.Weather = snapshot
		}
	}
	return s.repo.Save(ctx, record)
}

// GetByDate loads the entry for one calendar day
func (s *SymptomService) GetByDate(ctx context.Context, date time.Time) (*models.SymptomRecord, error) {
	return s.repo.GetByDate(ctx, date)
}

// ListRange returns entries within [from, to]
func (s *SymptomService) ListRange(ctx context.Context, from, to time.Time) ([]models.SymptomRecord, error) {
	return s.repo.ListRange(ctx, from, to)
}

// ListRecent returns the most recent entries, newest first
func (s *SymptomService) ListRecent(ctx context.Context, limit int) ([]models.SymptomRecord, error) {
	return s.repo.ListRecent(ctx, limit)
}

// Delete removes an entry
func (s *SymptomService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
