package ports

import (
	"github.com/google/uuid"

	"flarelog/models"
)

// ReminderScheduler is the timer service backing medication reminders.
// Scheduling replaces any timers already registered for the medication.
type ReminderScheduler interface {
	Schedule(med *models.MedicationRecord) error
	Cancel(medID uuid.UUID)
	Active() int
}
