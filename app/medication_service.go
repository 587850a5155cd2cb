package app

import (
	"context"
	"log"

	"github.com/google/uuid"

	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// MedicationService wraps the medication repository and keeps the reminder
// scheduler in step with record changes: toggling the reminder flag or
// deleting a record schedules or cancels its timers as a side effect.
type MedicationService struct {
	repo      ports.MedicationRepository
	scheduler ports.ReminderScheduler
}

// NewMedicationService creates the service
func NewMedicationService(repo ports.MedicationRepository, scheduler ports.ReminderScheduler) *MedicationService {
	return &MedicationService{repo: repo, scheduler: scheduler}
}

// Create validates and stores a medication, scheduling reminders if enabled
func (s *MedicationService) Create(ctx context.Context, record *models.MedicationRecord) error {
	if err := s.validate(record); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}
	if record.ReminderEnabled {
		if err := s.scheduler.Schedule(record); err != nil {
			log.Printf("[MedicationService] Reminder scheduling failed for %s: %v", record.Name, err)
		}
	}
	return nil
}

// Update stores changes and reconciles the reminder schedule
func (s *MedicationService) Update(ctx context.Context, record *models.MedicationRecord) error {
	if err := s.validate(record); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return err
	}
	if record.ReminderEnabled {
		if err := s.scheduler.Schedule(record); err != nil {
			log.Printf("[MedicationService] Reminder scheduling failed for %s: %v", record.Name, err)
		}
	} else {
		s.scheduler.Cancel(record.ID)
	}
	return nil
}

// SetReminder flips the reminder flag and applies the schedule side effect
func (s *MedicationService) SetReminder(ctx context.Context, id uuid.UUID, enabled bool) (*models.MedicationRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	record.ReminderEnabled = enabled
	if err := s.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get loads one record
func (s *MedicationService) Get(ctx context.Context, id uuid.UUID) (*models.MedicationRecord, error) {
	return s.repo.Get(ctx, id)
}

// List returns all medication records
func (s *MedicationService) List(ctx context.Context) ([]models.MedicationRecord, error) {
	return s.repo.List(ctx)
}

// Delete removes the record and cancels any reminders it held
func (s *MedicationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.scheduler.Cancel(id)
	return nil
}

// RestoreSchedules re-arms reminders for every enabled record; called at
// startup since timers do not survive a restart
func (s *MedicationService) RestoreSchedules(ctx context.Context) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	restored := 0
	for i := range records {
		if !records[i].ReminderEnabled {
			continue
		}
		if err := s.scheduler.Schedule(&records[i]); err != nil {
			log.Printf("[MedicationService] Could not restore reminders for %s: %v", records[i].Name, err)
			continue
		}
		restored++
	}
	log.Printf("[MedicationService] Restored reminder schedules for %d medications", restored)
	return nil
}

func (s *MedicationService) validate(record *models.MedicationRecord) error {
	if record.Name == "" {
		return errors.InvalidInput("medication name is required")
	}
	if !models.ValidFrequency(record.Frequency) {
		return errors.InvalidInput("unknown medication frequency: " + string(record.Frequency))
	}
	if err := record.Times.Validate(); err != nil {
		return errors.Wrap(err, "invalid dose times")
	}
	return nil
}
