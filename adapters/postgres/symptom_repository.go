package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// SymptomRepositoryImpl implements SymptomRepository for PostgreSQL
type SymptomRepositoryImpl struct {
	db *sqlx.DB
}

// NewSymptomRepository creates a new PostgreSQL symptom repository
func NewSymptomRepository(db *sqlx.DB) ports.SymptomRepository {
	return &SymptomRepositoryImpl{db: db}
}

// Save inserts the record, overwriting any existing entry for the same
// calendar date. Dates are unique: a day has at most one entry.
func (r *SymptomRepositoryImpl) Save(ctx context.Context, record *models.SymptomRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO symptom_records (id, record_date, severity, symptoms, notes, weather, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (record_date) DO UPDATE SET
			severity = EXCLUDED.severity,
			symptoms = EXCLUDED.symptoms,
			notes = EXCLUDED.notes,
			weather = EXCLUDED.weather,
			updated_at = NOW()
	`, record.ID, record.Date.Format("2006-01-02"), record.Severity, record.Symptoms,
		record.Notes, record.Weather, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to save symptom record")
	}
	return nil
}

// GetByDate returns the entry for a calendar day, or NotFound
func (r *SymptomRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*models.SymptomRecord, error) {
	var record models.SymptomRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, record_date, severity, symptoms, notes, weather, created_at, updated_at
		FROM symptom_records
		WHERE record_date = $1
	`, date.Format("2006-01-02"))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("symptom record")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load symptom record")
	}
	return &record, nil
}

// ListRange returns entries within [from, to], oldest first
func (r *SymptomRepositoryImpl) ListRange(ctx context.Context, from, to time.Time) ([]models.SymptomRecord, error) {
	records := []models.SymptomRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, record_date, severity, symptoms, notes, weather, created_at, updated_at
		FROM symptom_records
		WHERE record_date BETWEEN $1 AND $2
		ORDER BY record_date ASC
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list symptom records")
	}
	return records, nil
}

// ListRecent returns the most recent entries, newest first. A limit of zero
// or less returns everything.
func (r *SymptomRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]models.SymptomRecord, error) {
	records := []models.SymptomRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, record_date, severity, symptoms, notes, weather, created_at, updated_at
		FROM symptom_records
		ORDER BY record_date DESC
		LIMIT NULLIF($1, 0)
	`, max(limit, 0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent symptom records")
	}
	return records, nil
}

// Delete removes an entry by id
func (r *SymptomRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM symptom_records WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete symptom record")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("symptom record")
	}
	return nil
}
