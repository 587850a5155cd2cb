package models

import (
	"testing"
	"time"
)

func TestValidFrequency(t *testing.T) {
	for _, f := range []Frequency{
		FrequencyDaily, FrequencyTwiceDaily, FrequencyThreeDaily,
		FrequencyWeekly, FrequencyAsNeeded, FrequencyEveryOther,
	} {
		if !ValidFrequency(f) {
			t.Errorf("Expected %q to be valid", f)
		}
	}
	if ValidFrequency("hourly") {
		t.Error("Expected unknown frequency to be invalid")
	}
}

func TestClockTimesValidate(t *testing.T) {
	good := ClockTimes{"08:00", "20:30", "23:59"}
	if err := good.Validate(); err != nil {
		t.Errorf("Expected valid clock times, got %v", err)
	}

	for _, bad := range []ClockTimes{{"8am"}, {"25:00"}, {"12:60"}} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Expected %v to fail validation", bad)
		}
	}

	var empty ClockTimes
	if err := empty.Validate(); err != nil {
		t.Errorf("Empty times are allowed (as-needed medications), got %v", err)
	}
}

func TestActiveDuring(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	med := NewMedicationRecord("Test", "5mg", FrequencyDaily, nil, start)

	// Ongoing medication overlaps any window at or after its start
	if !med.ActiveDuring(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Error("Ongoing medication should be active after start")
	}
	if med.ActiveDuring(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Medication should not be active before its start")
	}

	med.EndDate = &end
	if med.ActiveDuring(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Ended medication should not be active after end")
	}
	if !med.ActiveDuring(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("Window straddling the end date should overlap")
	}
}
