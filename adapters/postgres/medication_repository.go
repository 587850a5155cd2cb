package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// MedicationRepositoryImpl implements MedicationRepository for PostgreSQL
type MedicationRepositoryImpl struct {
	db *sqlx.DB
}

// NewMedicationRepository creates a new PostgreSQL medication repository
func NewMedicationRepository(db *sqlx.DB) ports.MedicationRepository {
	return &MedicationRepositoryImpl{db: db}
}

// Create inserts a new medication record
func (r *MedicationRepositoryImpl) Create(ctx context.Context, record *models.MedicationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_records (id, name, dosage, frequency, times, notes, start_date, end_date, reminder_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, record.ID, record.Name, record.Dosage, record.Frequency, record.Times,
		record.Notes, record.StartDate, record.EndDate, record.ReminderEnabled,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create medication record")
	}
	return nil
}

// Update rewrites the mutable fields of an existing record
func (r *MedicationRepositoryImpl) Update(ctx context.Context, record *models.MedicationRecord) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE medication_records
		SET name = $2, dosage = $3, frequency = $4, times = $5, notes = $6,
			start_date = $7, end_date = $8, reminder_enabled = $9, updated_at = NOW()
		WHERE id = $1
	`, record.ID, record.Name, record.Dosage, record.Frequency, record.Times,
		record.Notes, record.StartDate, record.EndDate, record.ReminderEnabled)
	if err != nil {
		return errors.Wrap(err, "failed to update medication record")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("medication record")
	}
	return nil
}

// Get loads one medication record by id
func (r *MedicationRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.MedicationRecord, error) {
	var record models.MedicationRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, name, dosage, frequency, times, notes, start_date, end_date, reminder_enabled, created_at, updated_at
		FROM medication_records
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("medication record")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load medication record")
	}
	return &record, nil
}

// List returns all medication records, newest first
func (r *MedicationRepositoryImpl) List(ctx context.Context) ([]models.MedicationRecord, error) {
	records := []models.MedicationRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, name, dosage, frequency, times, notes, start_date, end_date, reminder_enabled, created_at, updated_at
		FROM medication_records
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list medication records")
	}
	return records, nil
}

// Delete removes a medication record
func (r *MedicationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medication_records WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete medication record")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("medication record")
	}
	return nil
}
