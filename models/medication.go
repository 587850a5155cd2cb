package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Frequency is the fixed set of medication frequency labels
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyTwiceDaily  Frequency = "twice_daily"
	FrequencyThreeDaily  Frequency = "three_times_daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyAsNeeded    Frequency = "as_needed"
	FrequencyEveryOther  Frequency = "every_other_day"
)

// ValidFrequency reports whether the label is one of the fixed enumeration
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyThreeDaily,
		FrequencyWeekly, FrequencyAsNeeded, FrequencyEveryOther:
		return true
	}
	return false
}

// ClockTimes is an ordered list of HH:MM dose times, stored as JSONB
type ClockTimes []string

// Value implements driver.Valuer interface
func (t ClockTimes) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner interface
func (t *ClockTimes) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*t = nil
		return nil
	}

	if len(bytes) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(bytes, t)
}

// Validate checks every entry parses as a 24h HH:MM clock time
func (t ClockTimes) Validate() error {
	for _, raw := range t {
		if _, err := time.Parse("15:04", raw); err != nil {
			return fmt.Errorf("invalid clock time %q: %w", raw, err)
		}
	}
	return nil
}

// MedicationRecord tracks one medication and its reminder schedule.
// EndDate nil means the medication is ongoing.
type MedicationRecord struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Dosage          string     `json:"dosage" db:"dosage"`
	Frequency       Frequency  `json:"frequency" db:"frequency"`
	Times           ClockTimes `json:"times" db:"times"`
	Notes           string     `json:"notes,omitempty" db:"notes"`
	StartDate       time.Time  `json:"start_date" db:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty" db:"end_date"`
	ReminderEnabled bool       `json:"reminder_enabled" db:"reminder_enabled"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// NewMedicationRecord creates a medication record starting on startDate
func NewMedicationRecord(name, dosage string, frequency Frequency, times ClockTimes, startDate time.Time) *MedicationRecord {
	now := time.Now()
	return &MedicationRecord{
		ID:        uuid.New(),
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		Times:     times,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActiveDuring reports whether the medication's date range overlaps
// [from, to]. An absent end date means the medication is still active.
func (m *MedicationRecord) ActiveDuring(from, to time.Time) bool {
	if m.StartDate.After(to) {
		return false
	}
	if m.EndDate != nil && m.EndDate.Before(from) {
		return false
	}
	return true
}

// MedicationSummary is the reduced projection embedded in prompts
type MedicationSummary struct {
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency Frequency `json:"frequency"`
}

// Summary projects the record to its prompt shape
func (m *MedicationRecord) Summary() MedicationSummary {
	return MedicationSummary{
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
	}
}
