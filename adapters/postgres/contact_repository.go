package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// ContactRepositoryImpl implements ContactRepository for PostgreSQL
type ContactRepositoryImpl struct {
	db *sqlx.DB
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(db *sqlx.DB) ports.ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

// Create inserts an emergency contact
func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *models.EmergencyContact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO emergency_contacts (id, name, relationship, phone, email, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, contact.ID, contact.Name, contact.Relationship, contact.Phone,
		contact.Email, contact.IsPrimary, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create emergency contact")
	}
	return nil
}

// Update rewrites an existing contact
func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *models.EmergencyContact) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE emergency_contacts
		SET name = $2, relationship = $3, phone = $4, email = $5, is_primary = $6, updated_at = NOW()
		WHERE id = $1
	`, contact.ID, contact.Name, contact.Relationship, contact.Phone, contact.Email, contact.IsPrimary)
	if err != nil {
		return errors.Wrap(err, "failed to update emergency contact")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("emergency contact")
	}
	return nil
}

// List returns all contacts, primary first
func (r *ContactRepositoryImpl) List(ctx context.Context) ([]models.EmergencyContact, error) {
	contacts := []models.EmergencyContact{}
	err := r.db.SelectContext(ctx, &contacts, `
		SELECT id, name, relationship, phone, email, is_primary, created_at, updated_at
		FROM emergency_contacts
		ORDER BY is_primary DESC, name ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list emergency contacts")
	}
	return contacts, nil
}

// Delete removes a contact
func (r *ContactRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete emergency contact")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("emergency contact")
	}
	return nil
}
