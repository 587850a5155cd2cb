package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"flarelog/ai"
	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// Input gates enforced here, before the pipeline is invoked. Below the gate
// the user sees a static instructional message, not a retryable failure.
const (
	MinInsightRecords = 5
	MinPatternRecords = 10
	MaxPromptRecords  = 30
)

// validTimeRanges bounds the pattern analysis window, in months
var validTimeRanges = map[int]bool{3: true, 6: true, 12: true, 24: true}

// ErrSuperseded marks a result that finished after a newer request for the
// same view began. Callers drop it silently; the newer flight's result is
// the one that reaches the UI.
var ErrSuperseded = errors.New("SUPERSEDED", "generation result superseded by a newer request")

// InsightService owns the caller contract around the generation pipeline:
// input gates, summary projection, truncation, medication window filtering,
// and request coalescing. The pipeline behind it stays stateless.
type InsightService struct {
	generator ports.InsightGeneratorPort

	group singleflight.Group

	mu  sync.Mutex
	seq map[string]uint64
}

// NewInsightService creates the service over a generator port
func NewInsightService(generator ports.InsightGeneratorPort) *InsightService {
	return &InsightService{
		generator: generator,
		seq:       make(map[string]uint64),
	}
}

// GenerateInsights produces 1-5 narrative insights for the given records.
// Zero records yield an empty result (explicit empty state); one to four
// records fail the input gate. Concurrent requests for the insights view
// coalesce into one generation call, and a result that lost the race to a
// newer request is reported as ErrSuperseded.
func (s *InsightService) GenerateInsights(ctx context.Context, symptoms []models.SymptomRecord, medications []models.MedicationRecord, symptomNames []string) (*ports.InsightGeneration, error) {
	if len(symptoms) == 0 {
		return &ports.InsightGeneration{
			Insights: []models.InsightRecord{},
			Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorHeuristic},
		}, nil
	}
	if len(symptoms) < MinInsightRecords {
		return nil, errors.InsufficientData(fmt.Sprintf("insights need at least %d symptom entries; have %d", MinInsightRecords, len(symptoms)))
	}

	recent := recentRecords(symptoms, MaxPromptRecords)
	req := ports.InsightRequest{
		Symptoms:     ai.SummarizeSymptoms(recent),
		Medications:  ai.SummarizeMedications(activeMedications(medications, recent)),
		SymptomNames: symptomNames,
	}

	const key = "insights"
	seq := s.beginRequest(key)

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generator.GenerateInsights(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if s.isSuperseded(key, seq) {
		return nil, ErrSuperseded
	}
	return result.(*ports.InsightGeneration), nil
}

// GeneratePatternVisualizations produces chart-ready patterns over the given
// analysis window (3, 6, 12, or 24 months).
func (s *InsightService) GeneratePatternVisualizations(ctx context.Context, symptoms []models.SymptomRecord, medications []models.MedicationRecord, symptomNames []string, timeRangeMonths int) (*ports.PatternGeneration, error) {
	if !validTimeRanges[timeRangeMonths] {
		return nil, errors.InvalidInput(fmt.Sprintf("time range must be 3, 6, 12, or 24 months; got %d", timeRangeMonths))
	}
	if len(symptoms) == 0 {
		return &ports.PatternGeneration{
			Patterns: []models.PatternRecord{},
			Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorHeuristic},
		}, nil
	}
	if len(symptoms) < MinPatternRecords {
		return nil, errors.InsufficientData(fmt.Sprintf("patterns need at least %d symptom entries; have %d", MinPatternRecords, len(symptoms)))
	}

	windowed := windowRecords(symptoms, timeRangeMonths)
	req := ports.PatternRequest{
		InsightRequest: ports.InsightRequest{
			Symptoms:     ai.SummarizeSymptoms(windowed),
			Medications:  ai.SummarizeMedications(activeMedications(medications, windowed)),
			SymptomNames: symptomNames,
		},
		TimeRangeMonths: timeRangeMonths,
	}

	key := fmt.Sprintf("patterns:%d", timeRangeMonths)
	seq := s.beginRequest(key)

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generator.GeneratePatterns(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if s.isSuperseded(key, seq) {
		return nil, ErrSuperseded
	}
	return result.(*ports.PatternGeneration), nil
}

// beginRequest bumps the per-view sequence and returns this request's stamp
func (s *InsightService) beginRequest(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	return s.seq[key]
}

// isSuperseded reports whether a newer request for the view began after seq
func (s *InsightService) isSuperseded(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[key] != seq
}

// recentRecords returns up to limit entries, most recent first
func recentRecords(records []models.SymptomRecord, limit int) []models.SymptomRecord {
	sorted := make([]models.SymptomRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// windowRecords drops entries older than the analysis window
func windowRecords(records []models.SymptomRecord, months int) []models.SymptomRecord {
	cutoff := time.Now().AddDate(0, -months, 0)
	windowed := make([]models.SymptomRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Date.Before(cutoff) {
			windowed = append(windowed, rec)
		}
	}
	sort.Slice(windowed, func(i, j int) bool {
		return windowed[i].Date.After(windowed[j].Date)
	})
	return windowed
}

// activeMedications keeps medications whose active range overlaps the span
// of the included symptom entries
func activeMedications(medications []models.MedicationRecord, symptoms []models.SymptomRecord) []models.MedicationRecord {
	if len(symptoms) == 0 || len(medications) == 0 {
		return nil
	}

	from, to := symptoms[0].Date, symptoms[0].Date
	for _, rec := range symptoms[1:] {
		if rec.Date.Before(from) {
			from = rec.Date
		}
		if rec.Date.After(to) {
			to = rec.Date
		}
	}

	active := make([]models.MedicationRecord, 0, len(medications))
	for _, med := range medications {
		if med.ActiveDuring(from, to) {
			active = append(active, med)
		}
	}
	return active
}
