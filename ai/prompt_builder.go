package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"flarelog/models"
)

// InsightSystemContext instructs the generator to emit nothing but the array
const InsightSystemContext = "You are a health data analyst reviewing a personal symptom diary. " +
	"Respond with the requested JSON array only. Never include explanatory prose, " +
	"headings, or commentary outside the array."

// InsightCount and PatternCount fix how many objects the contract demands
const (
	InsightCount = 5
	PatternCount = 4
)

// SummarizeSymptoms projects full records to the reduced prompt shape.
// Callers truncate to the most recent entries before projecting; nothing
// beyond date, severity, present symptoms, reduced weather, and notes may
// leave the process.
func SummarizeSymptoms(records []models.SymptomRecord) []models.SymptomSummary {
	summaries := make([]models.SymptomSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, models.SymptomSummary{
			Date:     rec.Date.Format("2006-01-02"),
			Severity: rec.Severity,
			Symptoms: rec.Symptoms.PresentNames(),
			Weather:  rec.Weather.Summary(),
			Notes:    rec.Notes,
		})
	}
	return summaries
}

// SummarizeMedications projects medication records to their prompt shape
func SummarizeMedications(records []models.MedicationRecord) []models.MedicationSummary {
	summaries := make([]models.MedicationSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, rec.Summary())
	}
	return summaries
}

// BuildInsightPrompt assembles the generation request for narrative
// insights. Pure data transformation: given well-formed summaries it always
// succeeds (network and parsing failures belong to the client and extractor).
func BuildInsightPrompt(symptoms []models.SymptomSummary, medications []models.MedicationSummary, symptomNames []string) (system, prompt string) {
	symptomJSON, _ := json.MarshalIndent(symptoms, "", "  ")
	medJSON, _ := json.MarshalIndent(medications, "", "  ")

	prompt = fmt.Sprintf(`You are analyzing a symptom diary kept by someone managing an inflammatory condition.

Symptom entries (date, severity 0-3, symptoms present, weather, notes):
%s

Active medications:
%s

Tracked symptom types: %s

Look for correlations between symptom severity, specific symptoms, weather conditions, and medications. Generate exactly %d observations.

Return ONLY a JSON array of %d objects. Each object has an "insight" string and an integer "confidence" from 0 to 100:
[{"insight": "Your joint pain entries cluster on days with humidity above 70%%.", "confidence": 72}]

Do not include any text outside the JSON array.`,
		string(symptomJSON),
		string(medJSON),
		strings.Join(symptomNames, ", "),
		InsightCount,
		InsightCount)

	return InsightSystemContext, prompt
}

// BuildPatternPrompt assembles the generation request for chart-ready
// pattern descriptors over the given analysis window.
func BuildPatternPrompt(symptoms []models.SymptomSummary, medications []models.MedicationSummary, symptomNames []string, timeRangeMonths int) (system, prompt string) {
	symptomJSON, _ := json.MarshalIndent(symptoms, "", "  ")
	medJSON, _ := json.MarshalIndent(medications, "", "  ")

	prompt = fmt.Sprintf(`You are analyzing %d months of symptom diary data from someone managing an inflammatory condition.

Symptom entries (date, severity 0-3, symptoms present, weather, notes):
%s

Active medications:
%s

Tracked symptom types: %s

Identify exactly %d chartable patterns across these dimensions: weekly, monthly, weather, medication, custom.

Return ONLY a JSON array of %d objects. Each object has keys "type" (weekly|monthly|weather|medication|custom), "title", "description", "chartType" (line|bar|scatter|radar|composed), "data" (non-empty array of points; field names depend on type: "day" for weekly, "month" for monthly, "temperature" for weather, "name" for medication and custom, always with a numeric "severity" or "value"), "insights" (array of short strings), and an integer "confidence" from 0 to 100:
[{"type": "weekly", "title": "Severity by weekday", "description": "Mean severity per weekday", "chartType": "bar", "data": [{"day": "Monday", "severity": 1.8}], "insights": ["Mondays run higher"], "confidence": 68}]

Do not include any text outside the JSON array.`,
		timeRangeMonths,
		string(symptomJSON),
		string(medJSON),
		strings.Join(symptomNames, ", "),
		PatternCount,
		PatternCount)

	return InsightSystemContext, prompt
}
