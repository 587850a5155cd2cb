package ai

import (
	"encoding/json"
	"log"

	"flarelog/models"
)

// Typed decoding of extracted elements. Schema validation is deliberately
// not the extractor's job: elements missing expected keys are accepted here
// and default-filled, never rejected (a SchemaLeniencyWarning, not an error).

type rawInsight struct {
	Insight    string `json:"insight"`
	Confidence *int   `json:"confidence"`
}

// DecodeInsights converts extracted elements into InsightRecord values.
// Elements that are not objects or carry no narrative text are dropped;
// a missing confidence defaults to models.DefaultConfidence.
func DecodeInsights(elements []json.RawMessage) []models.InsightRecord {
	insights := make([]models.InsightRecord, 0, len(elements))
	for i, element := range elements {
		var raw rawInsight
		if err := json.Unmarshal(element, &raw); err != nil {
			log.Printf("[Decode] Skipping insight element %d: %v", i, err)
			continue
		}
		if raw.Insight == "" {
			log.Printf("[Decode] Skipping insight element %d: no insight text", i)
			continue
		}
		insights = append(insights, models.InsightRecord{
			Text:       raw.Insight,
			Confidence: normalizeConfidence(raw.Confidence),
		})
	}
	return insights
}

type rawPattern struct {
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ChartType   string            `json:"chartType"`
	Data        []json.RawMessage `json:"data"`
	Insights    []string          `json:"insights"`
	Confidence  *int              `json:"confidence"`
}

// DecodePatterns converts extracted elements into PatternRecord values.
// Point field names depend on the declared category, so each category
// decodes into its own variant; unknown categories fall back to the
// labeled-value custom shape. Chart-kind fitness is the caller's defensive
// check (PatternRecord.Validate), not enforced here.
func DecodePatterns(elements []json.RawMessage) []models.PatternRecord {
	patterns := make([]models.PatternRecord, 0, len(elements))
	for i, element := range elements {
		var raw rawPattern
		if err := json.Unmarshal(element, &raw); err != nil {
			log.Printf("[Decode] Skipping pattern element %d: %v", i, err)
			continue
		}

		category := models.PatternCategory(raw.Type)
		if !models.ValidPatternCategory(category) {
			log.Printf("[Decode] Pattern element %d: unknown category %q, treating as custom", i, raw.Type)
			category = models.PatternCustom
		}

		patterns = append(patterns, models.PatternRecord{
			Category:    category,
			Title:       raw.Title,
			Description: raw.Description,
			ChartKind:   models.ChartKind(raw.ChartType),
			Points:      decodePoints(category, raw.Data),
			Insights:    raw.Insights,
			Confidence:  normalizeConfidence(raw.Confidence),
		})
	}
	return patterns
}

// decodePoints decodes data elements into the variant the category expects,
// skipping malformed points instead of failing the whole pattern
func decodePoints(category models.PatternCategory, data []json.RawMessage) models.PatternPoints {
	switch category {
	case models.PatternWeekly:
		return decodeInto[models.WeekdayPoint, models.WeekdayPoints](data)
	case models.PatternMonthly:
		return decodeInto[models.MonthPoint, models.MonthPoints](data)
	case models.PatternWeather:
		return decodeInto[models.WeatherPoint, models.WeatherPoints](data)
	case models.PatternMedication:
		return decodeInto[models.MedicationPoint, models.MedicationPoints](data)
	default:
		return decodeInto[models.CustomPoint, models.CustomPoints](data)
	}
}

func decodeInto[P any, S ~[]P](data []json.RawMessage) S {
	points := make(S, 0, len(data))
	for _, element := range data {
		var point P
		if err := json.Unmarshal(element, &point); err != nil {
			continue
		}
		points = append(points, point)
	}
	return points
}

// normalizeConfidence default-fills and clamps to the 0-100 scale
func normalizeConfidence(confidence *int) int {
	if confidence == nil {
		return models.DefaultConfidence
	}
	c := *confidence
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
