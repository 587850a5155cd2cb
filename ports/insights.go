package ports

import (
	"context"

	"flarelog/models"
)

// GeneratorType identifies which path produced a generation result
type GeneratorType string

const (
	GeneratorLLM       GeneratorType = "llm"
	GeneratorHeuristic GeneratorType = "heuristic"
)

// InsightRequest carries the already-projected record summaries for one
// insight generation. Callers truncate and filter before building a request.
type InsightRequest struct {
	Symptoms     []models.SymptomSummary
	Medications  []models.MedicationSummary
	SymptomNames []string
}

// PatternRequest additionally bounds the analysis window
type PatternRequest struct {
	InsightRequest
	TimeRangeMonths int // one of 3, 6, 12, 24
}

// InsightGeneration is the result of one insight run
type InsightGeneration struct {
	Insights []models.InsightRecord
	Audit    GenerationAudit
}

// PatternGeneration is the result of one pattern run
type PatternGeneration struct {
	Patterns []models.PatternRecord
	Audit    GenerationAudit
}

// GenerationAudit records how a result was produced
type GenerationAudit struct {
	GeneratorType GeneratorType
	Model         string
	Strategy      string // extraction strategy that recovered the array, if any
	FallbackCause string // why the heuristic path was taken, if it was
}

// InsightGeneratorPort produces insight and pattern records from summaries
type InsightGeneratorPort interface {
	GenerateInsights(ctx context.Context, req InsightRequest) (*InsightGeneration, error)
	GeneratePatterns(ctx context.Context, req PatternRequest) (*PatternGeneration, error)
}
