package reminder

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"flarelog/models"
)

// NotifyFunc delivers a due reminder to whatever surface shows it
type NotifyFunc func(med *models.MedicationRecord, due time.Time)

// Scheduler is a timer-backed reminder service. Scheduling a medication
// registers one repeating timer per dose time; cancelling drops them all.
type Scheduler struct {
	mu     sync.Mutex
	timers map[uuid.UUID][]*time.Timer
	notify NotifyFunc
	now    func() time.Time // injectable clock for tests
}

// NewScheduler creates a scheduler that delivers reminders through notify
func NewScheduler(notify NotifyFunc) *Scheduler {
	if notify == nil {
		notify = func(med *models.MedicationRecord, due time.Time) {
			log.Printf("[Reminder] %s (%s) due at %s", med.Name, med.Dosage, due.Format("15:04"))
		}
	}
	return &Scheduler{
		timers: make(map[uuid.UUID][]*time.Timer),
		notify: notify,
		now:    time.Now,
	}
}

// Schedule registers timers for every dose time of the medication,
// replacing any previous schedule for the same record.
func (s *Scheduler) Schedule(med *models.MedicationRecord) error {
	if err := med.Times.Validate(); err != nil {
		return err
	}

	s.Cancel(med.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clock := range med.Times {
		due := s.nextOccurrence(clock)
		medCopy := *med
		var timer *time.Timer
		timer = time.AfterFunc(time.Until(due), func() {
			s.notify(&medCopy, due)
			// Re-arm for the next day unless the schedule was cancelled
			s.mu.Lock()
			if _, active := s.timers[medCopy.ID]; active {
				timer.Reset(24 * time.Hour)
			}
			s.mu.Unlock()
		})
		s.timers[med.ID] = append(s.timers[med.ID], timer)
	}

	log.Printf("[Reminder] Scheduled %d dose reminders for %s", len(med.Times), med.Name)
	return nil
}

// Cancel stops and removes all timers for the medication
func (s *Scheduler) Cancel(medID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, timer := range s.timers[medID] {
		timer.Stop()
	}
	delete(s.timers, medID)
}

// Active returns the number of medications with scheduled reminders
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every schedule; used at shutdown
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timers := range s.timers {
		for _, timer := range timers {
			timer.Stop()
		}
		delete(s.timers, id)
	}
}

// nextOccurrence finds the next time the HH:MM clock value comes around
func (s *Scheduler) nextOccurrence(clock string) time.Time {
	parsed, _ := time.Parse("15:04", clock) // validated by Schedule
	now := s.now()
	due := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !due.After(now) {
		due = due.Add(24 * time.Hour)
	}
	return due
}
