package app

import (
	"context"
	"testing"
	"time"

	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// capturingGenerator records the request it received and returns canned output
type capturingGenerator struct {
	insightReq *ports.InsightRequest
	patternReq *ports.PatternRequest
}

func (g *capturingGenerator) GenerateInsights(ctx context.Context, req ports.InsightRequest) (*ports.InsightGeneration, error) {
	g.insightReq = &req
	return &ports.InsightGeneration{
		Insights: []models.InsightRecord{{Text: "canned", Confidence: 70}},
		Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorLLM},
	}, nil
}

func (g *capturingGenerator) GeneratePatterns(ctx context.Context, req ports.PatternRequest) (*ports.PatternGeneration, error) {
	g.patternReq = &req
	return &ports.PatternGeneration{
		Patterns: []models.PatternRecord{},
		Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorLLM},
	}, nil
}

func recordsOverDays(days int) []models.SymptomRecord {
	records := make([]models.SymptomRecord, days)
	for i := 0; i < days; i++ {
		rec := models.NewSymptomRecord(
			time.Now().AddDate(0, 0, -i),
			models.SeverityMild,
			models.SymptomPresence{"fatigue": true},
			"",
		)
		records[i] = *rec
	}
	return records
}

func TestGenerateInsightsZeroRecords(t *testing.T) {
	gen := &capturingGenerator{}
	svc := NewInsightService(gen)

	result, err := svc.GenerateInsights(context.Background(), nil, nil, nil)
	if err != nil {
		t.Fatalf("Zero records should be an explicit empty state, got error: %v", err)
	}
	if len(result.Insights) != 0 {
		t.Errorf("Expected empty insight list, got %d", len(result.Insights))
	}
	if gen.insightReq != nil {
		t.Error("Generator should not be invoked for zero records")
	}
}

func TestGenerateInsightsGate(t *testing.T) {
	svc := NewInsightService(&capturingGenerator{})

	_, err := svc.GenerateInsights(context.Background(), recordsOverDays(4), nil, nil)
	if err == nil {
		t.Fatal("Expected gate failure below minimum records")
	}
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("Expected INSUFFICIENT_DATA code, got %q", errors.GetCode(err))
	}

	_, err = svc.GenerateInsights(context.Background(), recordsOverDays(5), nil, nil)
	if err != nil {
		t.Errorf("Five records should pass the gate, got %v", err)
	}
}

func TestGenerateInsightsTruncatesToMostRecent(t *testing.T) {
	gen := &capturingGenerator{}
	svc := NewInsightService(gen)

	_, err := svc.GenerateInsights(context.Background(), recordsOverDays(45), nil, []string{"fatigue"})
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}
	if gen.insightReq == nil {
		t.Fatal("Generator was not invoked")
	}
	if len(gen.insightReq.Symptoms) != MaxPromptRecords {
		t.Errorf("Expected %d summaries after truncation, got %d", MaxPromptRecords, len(gen.insightReq.Symptoms))
	}
	// Most recent first; the oldest 15 days must be gone
	first := gen.insightReq.Symptoms[0].Date
	last := gen.insightReq.Symptoms[len(gen.insightReq.Symptoms)-1].Date
	if first < last {
		t.Errorf("Expected newest-first ordering, got %s .. %s", first, last)
	}
}

func TestGenerateInsightsFiltersInactiveMedications(t *testing.T) {
	gen := &capturingGenerator{}
	svc := NewInsightService(gen)

	records := recordsOverDays(10)

	old := time.Now().AddDate(-2, 0, 0)
	oldEnd := time.Now().AddDate(-1, 0, 0)
	expired := models.NewMedicationRecord("Old", "5mg", models.FrequencyDaily, nil, old)
	expired.EndDate = &oldEnd
	current := models.NewMedicationRecord("Current", "10mg", models.FrequencyDaily, nil, time.Now().AddDate(0, -1, 0))

	meds := []models.MedicationRecord{*expired, *current}
	_, err := svc.GenerateInsights(context.Background(), records, meds, nil)
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}
	if len(gen.insightReq.Medications) != 1 {
		t.Fatalf("Expected 1 active medication, got %d", len(gen.insightReq.Medications))
	}
	if gen.insightReq.Medications[0].Name != "Current" {
		t.Errorf("Expected the current medication, got %q", gen.insightReq.Medications[0].Name)
	}
}

func TestGeneratePatternsInvalidTimeRange(t *testing.T) {
	svc := NewInsightService(&capturingGenerator{})

	for _, months := range []int{0, 1, 5, 36} {
		_, err := svc.GeneratePatternVisualizations(context.Background(), recordsOverDays(12), nil, nil, months)
		if err == nil {
			t.Errorf("Expected rejection of %d-month range", months)
			continue
		}
		if errors.GetCode(err) != errors.CodeInvalidInput {
			t.Errorf("Expected INVALID_INPUT for %d months, got %q", months, errors.GetCode(err))
		}
	}
}

func TestGeneratePatternsGate(t *testing.T) {
	svc := NewInsightService(&capturingGenerator{})

	_, err := svc.GeneratePatternVisualizations(context.Background(), recordsOverDays(9), nil, nil, 6)
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("Expected INSUFFICIENT_DATA below the pattern gate, got %v", err)
	}

	_, err = svc.GeneratePatternVisualizations(context.Background(), recordsOverDays(10), nil, nil, 6)
	if err != nil {
		t.Errorf("Ten records should pass the gate, got %v", err)
	}
}

func TestGeneratePatternsWindowsRecords(t *testing.T) {
	gen := &capturingGenerator{}
	svc := NewInsightService(gen)

	records := recordsOverDays(10)
	// One record far outside any window
	stale := models.NewSymptomRecord(time.Now().AddDate(-3, 0, 0), models.SeveritySevere, nil, "")
	records = append(records, *stale)

	_, err := svc.GeneratePatternVisualizations(context.Background(), records, nil, nil, 3)
	if err != nil {
		t.Fatalf("GeneratePatternVisualizations failed: %v", err)
	}
	if gen.patternReq.TimeRangeMonths != 3 {
		t.Errorf("Expected 3-month window, got %d", gen.patternReq.TimeRangeMonths)
	}
	if len(gen.patternReq.Symptoms) != 10 {
		t.Errorf("Expected stale record dropped, got %d summaries", len(gen.patternReq.Symptoms))
	}
}

func TestRequestSupersession(t *testing.T) {
	svc := NewInsightService(&capturingGenerator{})

	first := svc.beginRequest("insights")
	second := svc.beginRequest("insights")

	if !svc.isSuperseded("insights", first) {
		t.Error("Older request should be superseded")
	}
	if svc.isSuperseded("insights", second) {
		t.Error("Newest request should not be superseded")
	}
	// Views track independently
	if svc.isSuperseded("patterns:6", svc.beginRequest("patterns:6")) {
		t.Error("Other views must not be affected")
	}
}
