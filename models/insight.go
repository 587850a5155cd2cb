package models

import "fmt"

// DefaultConfidence is assigned when a generated element omits its
// confidence score
const DefaultConfidence = 70

// InsightRecord is one narrative observation paired with an informal
// reliability score (0-100, not statistically calibrated). Ephemeral:
// held in UI state only, never persisted.
type InsightRecord struct {
	Text       string `json:"insight"`
	Confidence int    `json:"confidence"`
}

// PatternCategory is the fixed set of pattern dimensions
type PatternCategory string

const (
	PatternWeekly     PatternCategory = "weekly"
	PatternMonthly    PatternCategory = "monthly"
	PatternWeather    PatternCategory = "weather"
	PatternMedication PatternCategory = "medication"
	PatternCustom     PatternCategory = "custom"
)

// ValidPatternCategory reports whether the category is known
func ValidPatternCategory(c PatternCategory) bool {
	switch c {
	case PatternWeekly, PatternMonthly, PatternWeather, PatternMedication, PatternCustom:
		return true
	}
	return false
}

// ChartKind selects how a pattern should be rendered
type ChartKind string

const (
	ChartLine     ChartKind = "line"
	ChartBar      ChartKind = "bar"
	ChartScatter  ChartKind = "scatter"
	ChartRadar    ChartKind = "radar"
	ChartComposed ChartKind = "composed"
)

// ValidChartKind reports whether the kind is known
func ValidChartKind(k ChartKind) bool {
	switch k {
	case ChartLine, ChartBar, ChartScatter, ChartRadar, ChartComposed:
		return true
	}
	return false
}

// PatternPoints is the sealed union of per-category plotting point slices.
// Each category carries the fields its charts expect, instead of one
// loosely-typed point shape.
type PatternPoints interface {
	Len() int
	points()
}

// WeekdayPoint plots mean severity for one weekday
type WeekdayPoint struct {
	Day      string  `json:"day"`
	Severity float64 `json:"severity"`
	Count    int     `json:"count,omitempty"`
}

// MonthPoint plots mean severity for one calendar month
type MonthPoint struct {
	Month    string  `json:"month"`
	Severity float64 `json:"severity"`
	Count    int     `json:"count,omitempty"`
}

// WeatherPoint plots severity against temperature (scatter x-axis)
type WeatherPoint struct {
	Temperature float64 `json:"temperature"`
	Severity    float64 `json:"severity"`
}

// MedicationPoint plots mean severity while a named medication was active
type MedicationPoint struct {
	Name     string  `json:"name"`
	Severity float64 `json:"severity"`
	Count    int     `json:"count,omitempty"`
}

// CustomPoint is the labeled-value shape for generator-defined patterns
type CustomPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// WeekdayPoints is a series of weekday points
type WeekdayPoints []WeekdayPoint

// MonthPoints is a series of month points
type MonthPoints []MonthPoint

// WeatherPoints is a series of temperature/severity points
type WeatherPoints []WeatherPoint

// MedicationPoints is a series of medication points
type MedicationPoints []MedicationPoint

// CustomPoints is a series of labeled-value points
type CustomPoints []CustomPoint

func (p WeekdayPoints) Len() int    { return len(p) }
func (p MonthPoints) Len() int      { return len(p) }
func (p WeatherPoints) Len() int    { return len(p) }
func (p MedicationPoints) Len() int { return len(p) }
func (p CustomPoints) Len() int     { return len(p) }

func (WeekdayPoints) points()    {}
func (MonthPoints) points()      {}
func (WeatherPoints) points()    {}
func (MedicationPoints) points() {}
func (CustomPoints) points()     {}

// PatternRecord is a chart-ready summary of symptom data over one dimension.
// Like InsightRecord it is ephemeral pipeline output.
type PatternRecord struct {
	Category    PatternCategory `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ChartKind   ChartKind       `json:"chartType"`
	Points      PatternPoints   `json:"data"`
	Insights    []string        `json:"insights"`
	Confidence  int             `json:"confidence"`
}

// Validate is the defensive pre-render check: data must be non-empty and
// must carry the fields the declared chart kind expects. The extractor
// deliberately does not enforce this; callers do, before handing patterns
// to a renderer.
func (p *PatternRecord) Validate() error {
	if !ValidPatternCategory(p.Category) {
		return fmt.Errorf("unknown pattern category %q", p.Category)
	}
	if !ValidChartKind(p.ChartKind) {
		return fmt.Errorf("unknown chart kind %q", p.ChartKind)
	}
	if p.Points == nil || p.Points.Len() == 0 {
		return fmt.Errorf("pattern %q has no data points", p.Title)
	}
	if p.ChartKind == ChartScatter {
		// Scatter charts need a numeric x-field and numeric severity
		if _, ok := p.Points.(WeatherPoints); !ok {
			return fmt.Errorf("scatter pattern %q requires temperature/severity points", p.Title)
		}
	}
	return nil
}
