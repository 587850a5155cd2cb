package migration

import (
	"context"

	"flarelog/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSymptomRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create symptom_records table")
	}

	if err := r.createMedicationRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create medication_records table")
	}

	if err := r.createEmergencyContactsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create emergency_contacts table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createSymptomRecordsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS symptom_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			record_date DATE UNIQUE NOT NULL,
			severity SMALLINT NOT NULL DEFAULT 0,
			symptoms JSONB NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT '',
			weather JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createMedicationRecordsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS medication_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			dosage VARCHAR(100) NOT NULL DEFAULT '',
			frequency VARCHAR(50) NOT NULL,
			times JSONB NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			start_date DATE NOT NULL,
			end_date DATE,
			reminder_enabled BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createEmergencyContactsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS emergency_contacts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			relationship VARCHAR(100) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			is_primary BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_symptom_records_date ON symptom_records(record_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_medication_records_dates ON medication_records(start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_medication_records_reminder ON medication_records(reminder_enabled) WHERE reminder_enabled`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
