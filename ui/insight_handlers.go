package ui

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flarelog/app"
	"flarelog/internal/errors"
	"flarelog/models"
	"flarelog/ports"
)

// generateRequest carries the client's customized symptom-type set; the
// records themselves live server-side
type generateRequest struct {
	SymptomNames    []string `json:"symptom_names"`
	TimeRangeMonths int      `json:"time_range_months"`
}

// insightView is one insight plus its HTML rendering
type insightView struct {
	Insight    string `json:"insight"`
	Confidence int    `json:"confidence"`
	HTML       string `json:"html"`
}

func (s *Server) generateInsights(c *gin.Context) {
	var req generateRequest
	_ = c.ShouldBindJSON(&req) // body is optional
	if len(req.SymptomNames) == 0 {
		req.SymptomNames = models.DefaultSymptomTypes
	}

	symptoms, medications, ok := s.loadRecords(c, 365)
	if !ok {
		return
	}

	gen, err := s.insights.GenerateInsights(c.Request.Context(), symptoms, medications, req.SymptomNames)
	if err != nil {
		s.respondGenerationError(c, err)
		return
	}

	views := make([]insightView, len(gen.Insights))
	for i, insight := range gen.Insights {
		views[i] = insightView{
			Insight:    insight.Text,
			Confidence: insight.Confidence,
			HTML:       RenderInsightHTML(insight.Text),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     views,
		"fallback": gen.Audit.GeneratorType == ports.GeneratorHeuristic,
		"notice":   fallbackNotice(gen.Audit),
	})
}

func (s *Server) generatePatterns(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if len(req.SymptomNames) == 0 {
		req.SymptomNames = models.DefaultSymptomTypes
	}

	symptoms, medications, ok := s.loadRecords(c, 800)
	if !ok {
		return
	}

	gen, err := s.insights.GeneratePatternVisualizations(c.Request.Context(), symptoms, medications, req.SymptomNames, req.TimeRangeMonths)
	if err != nil {
		s.respondGenerationError(c, err)
		return
	}

	// Defensive pre-render check: the extractor accepts lenient shapes, so
	// patterns that cannot feed their declared chart are dropped here
	valid := make([]models.PatternRecord, 0, len(gen.Patterns))
	for i := range gen.Patterns {
		if err := gen.Patterns[i].Validate(); err != nil {
			log.Printf("[Server] Dropping unrenderable pattern: %v", err)
			continue
		}
		valid = append(valid, gen.Patterns[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     valid,
		"fallback": gen.Audit.GeneratorType == ports.GeneratorHeuristic,
		"notice":   fallbackNotice(gen.Audit),
	})
}

// loadRecords pulls the server-side record sets the pipeline reads
func (s *Server) loadRecords(c *gin.Context, limit int) ([]models.SymptomRecord, []models.MedicationRecord, bool) {
	symptoms, err := s.symptoms.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load symptom records"})
		return nil, nil, false
	}
	medications, err := s.medications.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load medication records"})
		return nil, nil, false
	}
	return symptoms, medications, true
}

// respondGenerationError maps pipeline errors to the caller contract:
// insufficient data is an instructional message, a superseded result is
// ignorable, everything else is a server error
func (s *Server) respondGenerationError(c *gin.Context, err error) {
	switch errors.GetCode(err) {
	case errors.CodeInsufficientData:
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
	case errors.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		if err == app.ErrSuperseded {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "superseded by a newer request", "superseded": true})
			return
		}
		log.Printf("[Server] Generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "insight generation failed"})
	}
}

// fallbackNotice is the informational banner text; empty when the LLM path
// produced the result
func fallbackNotice(audit ports.GenerationAudit) string {
	if audit.GeneratorType != ports.GeneratorHeuristic {
		return ""
	}
	return "Showing basic analysis instead."
}

// parseDateParam reads a YYYY-MM-DD path segment
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
