package reminder

import (
	"testing"
	"time"

	"flarelog/models"
)

func TestScheduleAndCancel(t *testing.T) {
	s := NewScheduler(func(med *models.MedicationRecord, due time.Time) {})
	defer s.Stop()

	med := models.NewMedicationRecord("Test", "5mg", models.FrequencyTwiceDaily, models.ClockTimes{"08:00", "20:00"}, time.Now())
	if err := s.Schedule(med); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if s.Active() != 1 {
		t.Errorf("Expected 1 active schedule, got %d", s.Active())
	}

	// Rescheduling the same record replaces, not accumulates
	if err := s.Schedule(med); err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if s.Active() != 1 {
		t.Errorf("Expected 1 active schedule after reschedule, got %d", s.Active())
	}

	s.Cancel(med.ID)
	if s.Active() != 0 {
		t.Errorf("Expected 0 active schedules after cancel, got %d", s.Active())
	}
}

func TestScheduleRejectsBadClockTimes(t *testing.T) {
	s := NewScheduler(nil)
	defer s.Stop()

	med := models.NewMedicationRecord("Test", "5mg", models.FrequencyDaily, models.ClockTimes{"8 o'clock"}, time.Now())
	if err := s.Schedule(med); err == nil {
		t.Error("Expected rejection of unparseable dose time")
	}
	if s.Active() != 0 {
		t.Errorf("Failed schedule should not register, got %d active", s.Active())
	}
}

func TestNotifyFires(t *testing.T) {
	fired := make(chan string, 1)
	s := NewScheduler(func(med *models.MedicationRecord, due time.Time) {
		fired <- med.Name
	})
	defer s.Stop()

	// Pin the scheduler clock in the past; the computed due time has already
	// elapsed, so the timer fires immediately
	s.now = func() time.Time {
		return time.Date(2020, 5, 1, 8, 59, 59, 0, time.Local)
	}

	med := models.NewMedicationRecord("Folic Acid", "5mg", models.FrequencyDaily, models.ClockTimes{"09:00"}, time.Now())
	if err := s.Schedule(med); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	select {
	case name := <-fired:
		if name != "Folic Acid" {
			t.Errorf("Unexpected medication in notification: %q", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Reminder did not fire")
	}
}

func TestNextOccurrenceRollsToTomorrow(t *testing.T) {
	s := NewScheduler(nil)
	s.now = func() time.Time {
		return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	}

	due := s.nextOccurrence("09:00")
	if due.Day() != 2 || due.Hour() != 9 {
		t.Errorf("Expected tomorrow 09:00, got %v", due)
	}

	due = s.nextOccurrence("11:30")
	if due.Day() != 1 || due.Hour() != 11 || due.Minute() != 30 {
		t.Errorf("Expected today 11:30, got %v", due)
	}
}
