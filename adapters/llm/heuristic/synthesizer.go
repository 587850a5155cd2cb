package heuristic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"flarelog/models"
	"flarelog/ports"
)

// Hand-assigned confidence scores for locally synthesized output. They
// reflect how directly each insight follows from arithmetic versus generic
// advice; there is no scoring formula behind them. Kept as variables so a
// deployment can tune them without touching the synthesis logic.
var (
	ConfidenceSeverityAverage = 80
	ConfidenceSymptomFreq     = 75
	ConfidenceMedicationCount = 70
	ConfidenceWeatherCoverage = 65
	ConfidenceEncouragement   = 90
	ConfidenceWeeklyPattern   = 60
	ConfidenceWeatherPattern  = 55
	ConfidenceMonthlyPattern  = 50
)

// severityAdviceThreshold branches the average-severity advice text (0-3 scale)
const severityAdviceThreshold = 2.0

// weatherCoverageMinimum is how many weather-tagged entries make coverage
// worth an insight of its own
const weatherCoverageMinimum = 5

// Synthesizer computes deterministic, locally-derived insights and patterns
// directly from record summaries. It makes no external calls and by
// construction cannot fail: arithmetic over already-validated records.
type Synthesizer struct{}

// NewSynthesizer creates a fallback synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// GenerateInsights implements ports.InsightGeneratorPort locally
func (s *Synthesizer) GenerateInsights(ctx context.Context, req ports.InsightRequest) (*ports.InsightGeneration, error) {
	return &ports.InsightGeneration{
		Insights: s.SynthesizeInsights(req.Symptoms, req.Medications),
		Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorHeuristic},
	}, nil
}

// GeneratePatterns implements ports.InsightGeneratorPort locally
func (s *Synthesizer) GeneratePatterns(ctx context.Context, req ports.PatternRequest) (*ports.PatternGeneration, error) {
	return &ports.PatternGeneration{
		Patterns: s.SynthesizePatterns(req.Symptoms),
		Audit:    ports.GenerationAudit{GeneratorType: ports.GeneratorHeuristic},
	}, nil
}

// SynthesizeInsights derives up to 5 insights from the summaries, in a fixed
// insertion order. Empty input yields an empty list, never an error.
func (s *Synthesizer) SynthesizeInsights(symptoms []models.SymptomSummary, medications []models.MedicationSummary) []models.InsightRecord {
	if len(symptoms) == 0 {
		return []models.InsightRecord{}
	}

	insights := make([]models.InsightRecord, 0, 5)

	// 1. Average severity with branching advice
	severities := make([]float64, len(symptoms))
	for i, sum := range symptoms {
		severities[i] = float64(sum.Severity)
	}
	avg, _ := stats.Mean(severities)
	if avg > severityAdviceThreshold {
		insights = append(insights, models.InsightRecord{
			Text:       fmt.Sprintf("Your average symptom severity is %.1f out of 3, which is on the higher end. It may be worth bringing this up to discuss treatment adjustments with your care team.", avg),
			Confidence: ConfidenceSeverityAverage,
		})
	} else {
		insights = append(insights, models.InsightRecord{
			Text:       fmt.Sprintf("Your average symptom severity is %.1f out of 3. Your symptoms appear reasonably managed; keep doing what works.", avg),
			Confidence: ConfidenceSeverityAverage,
		})
	}

	// 2. Two most frequent symptoms
	if top := topSymptoms(symptoms, 2); len(top) > 0 {
		insights = append(insights, models.InsightRecord{
			Text:       fmt.Sprintf("Your most frequently logged symptoms are %s. Tracking when these appear can help you and your doctor spot patterns over time.", joinNames(top)),
			Confidence: ConfidenceSymptomFreq,
		})
	}

	// 3. Medication count with singular/plural agreement
	if count := len(medications); count > 0 {
		word := "medications"
		if count == 1 {
			word = "medication"
		}
		insights = append(insights, models.InsightRecord{
			Text:       fmt.Sprintf("You are tracking %d %s. Taking doses consistently at the same times each day tends to improve how well they work.", count, word),
			Confidence: ConfidenceMedicationCount,
		})
	}

	// 4. Weather coverage
	weatherCount := 0
	for _, sum := range symptoms {
		if sum.Weather != nil {
			weatherCount++
		}
	}
	if weatherCount > weatherCoverageMinimum {
		insights = append(insights, models.InsightRecord{
			Text:       fmt.Sprintf("%d of your entries include weather conditions. That coverage makes it possible to identify weather-related triggers as more data accumulates.", weatherCount),
			Confidence: ConfidenceWeatherCoverage,
		})
	}

	// 5. Always close with encouragement to keep logging
	insights = append(insights, models.InsightRecord{
		Text:       "Keep logging daily. Consistent entries are the single biggest factor in surfacing reliable patterns from your data.",
		Confidence: ConfidenceEncouragement,
	})

	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}

// SynthesizePatterns derives chart-ready patterns from the summaries. The
// weekday pattern is always computed when input exists; weather and monthly
// patterns are added only when the data supports them. Empty input yields an
// empty list.
func (s *Synthesizer) SynthesizePatterns(symptoms []models.SymptomSummary) []models.PatternRecord {
	if len(symptoms) == 0 {
		return []models.PatternRecord{}
	}

	patterns := []models.PatternRecord{s.weeklyPattern(symptoms)}

	if weather := s.weatherPattern(symptoms); weather != nil {
		patterns = append(patterns, *weather)
	}
	if monthly := s.monthlyPattern(symptoms); monthly != nil {
		patterns = append(patterns, *monthly)
	}
	return patterns
}

// weekdayOrder fixes bucket presentation order
var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// weeklyPattern buckets entries by weekday, maintaining a running mean per
// bucket with the incremental update mean = (mean*count + v)/(count+1)
// rather than storing and dividing at the end.
func (s *Synthesizer) weeklyPattern(symptoms []models.SymptomSummary) models.PatternRecord {
	means := make(map[string]float64)
	counts := make(map[string]int)

	for _, sum := range symptoms {
		date, err := time.Parse("2006-01-02", sum.Date)
		if err != nil {
			continue
		}
		day := date.Weekday().String()
		means[day] = (means[day]*float64(counts[day]) + float64(sum.Severity)) / float64(counts[day]+1)
		counts[day]++
	}

	points := make(models.WeekdayPoints, 0, len(means))
	for _, day := range weekdayOrder {
		if count, ok := counts[day]; ok {
			points = append(points, models.WeekdayPoint{
				Day:      day,
				Severity: means[day],
				Count:    count,
			})
		}
	}

	return models.PatternRecord{
		Category:    models.PatternWeekly,
		Title:       "Severity by weekday",
		Description: "Mean symptom severity grouped by day of the week.",
		ChartKind:   models.ChartBar,
		Points:      points,
		Insights: []string{
			"Recurring weekday peaks can point to routine-driven triggers such as work stress or activity changes.",
			"More entries per weekday make these averages more trustworthy.",
		},
		Confidence: ConfidenceWeeklyPattern,
	}
}

// weatherPattern pairs temperature with severity for entries that carry a
// snapshot. Needs at least weatherCoverageMinimum points to be meaningful.
func (s *Synthesizer) weatherPattern(symptoms []models.SymptomSummary) *models.PatternRecord {
	points := make(models.WeatherPoints, 0, len(symptoms))
	temps := make([]float64, 0, len(symptoms))
	sevs := make([]float64, 0, len(symptoms))

	for _, sum := range symptoms {
		if sum.Weather == nil {
			continue
		}
		points = append(points, models.WeatherPoint{
			Temperature: sum.Weather.Temperature,
			Severity:    float64(sum.Severity),
		})
		temps = append(temps, sum.Weather.Temperature)
		sevs = append(sevs, float64(sum.Severity))
	}
	if len(points) < weatherCoverageMinimum {
		return nil
	}

	correlation, err := stats.Correlation(temps, sevs)
	if err != nil {
		correlation = 0
	}

	return &models.PatternRecord{
		Category:    models.PatternWeather,
		Title:       "Severity vs temperature",
		Description: fmt.Sprintf("Symptom severity plotted against temperature (Pearson r = %.2f).", correlation),
		ChartKind:   models.ChartScatter,
		Points:      points,
		Insights: []string{
			"Clusters of higher severity in one temperature band suggest a weather-sensitive component.",
			"Correlation here is descriptive, not causal; discuss persistent trends with your doctor.",
		},
		Confidence: ConfidenceWeatherPattern,
	}
}

// monthlyPattern computes mean severity per calendar month plus a linear
// trend over the month sequence. Needs entries spanning at least two months.
func (s *Synthesizer) monthlyPattern(symptoms []models.SymptomSummary) *models.PatternRecord {
	means := make(map[string]float64)
	counts := make(map[string]int)

	for _, sum := range symptoms {
		date, err := time.Parse("2006-01-02", sum.Date)
		if err != nil {
			continue
		}
		month := date.Format("2006-01")
		means[month] = (means[month]*float64(counts[month]) + float64(sum.Severity)) / float64(counts[month]+1)
		counts[month]++
	}
	if len(means) < 2 {
		return nil
	}

	months := make([]string, 0, len(means))
	for month := range means {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make(models.MonthPoints, 0, len(months))
	xs := make([]float64, 0, len(months))
	ys := make([]float64, 0, len(months))
	for i, month := range months {
		points = append(points, models.MonthPoint{
			Month:    month,
			Severity: means[month],
			Count:    counts[month],
		})
		xs = append(xs, float64(i))
		ys = append(ys, means[month])
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)

	trend := "holding steady"
	if slope > 0.05 {
		trend = "trending upward"
	} else if slope < -0.05 {
		trend = "trending downward"
	}

	return &models.PatternRecord{
		Category:    models.PatternMonthly,
		Title:       "Severity by month",
		Description: fmt.Sprintf("Mean symptom severity per month, %s (slope %.2f per month).", trend, slope),
		ChartKind:   models.ChartLine,
		Points:      points,
		Insights: []string{
			"Month-over-month movement reflects seasonal shifts as well as treatment changes.",
			"Compare this trend against medication start and end dates for context.",
		},
		Confidence: ConfidenceMonthlyPattern,
	}
}

// topSymptoms counts symptom presence across summaries and returns the most
// frequent names, descending; ties break alphabetically for determinism.
func topSymptoms(symptoms []models.SymptomSummary, limit int) []string {
	freq := make(map[string]int)
	for _, sum := range symptoms {
		for _, name := range sum.Symptoms {
			freq[name]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if freq[names[i]] != freq[names[j]] {
			return freq[names[i]] > freq[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return names[0] + " and " + names[1]
	}
}
