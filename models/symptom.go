package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Severity is the ordinal severity scale used across the app (0-3)
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

// String returns the human-readable severity label
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity label to its ordinal value
func ParseSeverity(label string) (Severity, error) {
	switch label {
	case "none":
		return SeverityNone, nil
	case "mild":
		return SeverityMild, nil
	case "moderate":
		return SeverityModerate, nil
	case "severe":
		return SeveritySevere, nil
	}
	return SeverityNone, fmt.Errorf("unknown severity label: %q", label)
}

// DefaultSymptomTypes is the starting ordered set of tracked symptom names;
// users customize it client-side and send their set with generation requests
var DefaultSymptomTypes = []string{
	"joint pain", "fatigue", "swelling", "stiffness",
	"rash", "fever", "headache", "brain fog",
}

// SymptomPresence maps symptom names to whether they were present that day.
// Backed by a JSONB column in PostgreSQL.
type SymptomPresence map[string]bool

// Value implements driver.Valuer interface
func (p SymptomPresence) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface
func (p *SymptomPresence) Scan(value interface{}) error {
	if value == nil {
		*p = make(SymptomPresence)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*p = make(SymptomPresence)
		return nil
	}

	if len(bytes) == 0 {
		*p = make(SymptomPresence)
		return nil
	}

	result := make(SymptomPresence)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*p = result
	return nil
}

// PresentNames returns the sorted list of symptom names marked present
func (p SymptomPresence) PresentNames() []string {
	names := make([]string, 0, len(p))
	for name, present := range p {
		if present {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SymptomRecord is one day's logged symptom entry. At most one record exists
// per calendar date; saving a new entry for an existing date overwrites it.
type SymptomRecord struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Date      time.Time        `json:"date" db:"record_date"`
	Severity  Severity         `json:"severity" db:"severity"`
	Symptoms  SymptomPresence  `json:"symptoms" db:"symptoms"`
	Notes     string           `json:"notes" db:"notes"`
	Weather   *WeatherSnapshot `json:"weather,omitempty" db:"weather"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// NewSymptomRecord creates a record for the given calendar day
func NewSymptomRecord(date time.Time, severity Severity, symptoms SymptomPresence, notes string) *SymptomRecord {
	now := time.Now()
	return &SymptomRecord{
		ID:        uuid.New(),
		Date:      date,
		Severity:  severity,
		Symptoms:  symptoms,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateKey returns the day-precision key used for per-date uniqueness
func (r *SymptomRecord) DateKey() string {
	return r.Date.Format("2006-01-02")
}

// SymptomSummary is the reduced projection of a SymptomRecord used when
// building prompts. Only these fields may leave the process; record IDs and
// unused weather fields stay behind.
type SymptomSummary struct {
	Date     string          `json:"date"`
	Severity Severity        `json:"severity"`
	Symptoms []string        `json:"symptoms"`
	Weather  *WeatherSummary `json:"weather,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// WeatherSummary is the reduced weather shape embedded in prompt summaries
type WeatherSummary struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
}
