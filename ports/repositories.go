package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flarelog/models"
)

// SymptomRepository stores daily symptom entries, one per calendar date
type SymptomRepository interface {
	// Save inserts the record, overwriting any existing entry for its date
	Save(ctx context.Context, record *models.SymptomRecord) error
	GetByDate(ctx context.Context, date time.Time) (*models.SymptomRecord, error)
	ListRange(ctx context.Context, from, to time.Time) ([]models.SymptomRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.SymptomRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MedicationRepository stores medication records
type MedicationRepository interface {
	Create(ctx context.Context, record *models.MedicationRecord) error
	Update(ctx context.Context, record *models.MedicationRecord) error
	Get(ctx context.Context, id uuid.UUID) (*models.MedicationRecord, error)
	List(ctx context.Context) ([]models.MedicationRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository stores emergency contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *models.EmergencyContact) error
	Update(ctx context.Context, contact *models.EmergencyContact) error
	List(ctx context.Context) ([]models.EmergencyContact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
