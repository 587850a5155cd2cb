package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flarelog/internal/errors"
	"flarelog/models"
)

// saveSymptomRequest is the PUT /api/symptoms/:date body. Severity arrives
// as its label; coordinates are optional and trigger a weather attach.
type saveSymptomRequest struct {
	Severity string          `json:"severity" binding:"required"`
	Symptoms map[string]bool `json:"symptoms"`
	Notes    string          `json:"notes"`
	Lat      *float64        `json:"lat"`
	Lon      *float64        `json:"lon"`
}

func (s *Server) saveSymptom(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	var req saveSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	severity, err := models.ParseSeverity(req.Severity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	record := models.NewSymptomRecord(date, severity, req.Symptoms, req.Notes)

	// Overwrite semantics: a snapshot already attached to this date survives
	if existing, err := s.symptoms.GetByDate(c.Request.Context(), date); err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.Weather = existing.Weather
	}

	if err := s.symptoms.Save(c.Request.Context(), record, req.Lat, req.Lon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (s *Server) getSymptomByDate(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}
	record, err := s.symptoms.GetByDate(c.Request.Context(), date)
	if err != nil {
		s.respondRepoError(c, err, "entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (s *Server) listSymptoms(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from != "" && to != "" {
		fromDate, err1 := time.Parse("2006-01-02", from)
		toDate, err2 := time.Parse("2006-01-02", to)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date range, expected YYYY-MM-DD"})
			return
		}
		records, err := s.symptoms.ListRange(c.Request.Context(), fromDate, toDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list entries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
		return
	}

	records, err := s.symptoms.ListRecent(c.Request.Context(), 90)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

func (s *Server) deleteSymptom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if err := s.symptoms.Delete(c.Request.Context(), id); err != nil {
		s.respondRepoError(c, err, "entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// medicationRequest is the create/update body
type medicationRequest struct {
	Name            string   `json:"name" binding:"required"`
	Dosage          string   `json:"dosage"`
	Frequency       string   `json:"frequency" binding:"required"`
	Times           []string `json:"times"`
	Notes           string   `json:"notes"`
	StartDate       string   `json:"start_date" binding:"required"`
	EndDate         *string  `json:"end_date"`
	ReminderEnabled bool     `json:"reminder_enabled"`
}

func (r *medicationRequest) toRecord() (*models.MedicationRecord, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, errors.InvalidInput("invalid start_date, expected YYYY-MM-DD")
	}

	record := models.NewMedicationRecord(r.Name, r.Dosage, models.Frequency(r.Frequency), r.Times, start)
	record.Notes = r.Notes
	record.ReminderEnabled = r.ReminderEnabled

	if r.EndDate != nil {
		end, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return nil, errors.InvalidInput("invalid end_date, expected YYYY-MM-DD")
		}
		record.EndDate = &end
	}
	return record, nil
}

func (s *Server) createMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	record, err := req.toRecord()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := s.medications.Create(c.Request.Context(), record); err != nil {
		s.respondRepoError(c, err, "medication")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

func (s *Server) updateMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	record, err := req.toRecord()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	record.ID = id

	if err := s.medications.Update(c.Request.Context(), record); err != nil {
		s.respondRepoError(c, err, "medication")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (s *Server) setMedicationReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	record, err := s.medications.SetReminder(c.Request.Context(), id, req.Enabled)
	if err != nil {
		s.respondRepoError(c, err, "medication")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (s *Server) listMedications(c *gin.Context) {
	records, err := s.medications.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list medications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

func (s *Server) deleteMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if err := s.medications.Delete(c.Request.Context(), id); err != nil {
		s.respondRepoError(c, err, "medication")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// contactRequest is the create/update body
type contactRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email"`
	IsPrimary    bool   `json:"is_primary"`
}

func (s *Server) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	contact := models.NewEmergencyContact(req.Name, req.Relationship, req.Phone)
	contact.Email = req.Email
	contact.IsPrimary = req.IsPrimary

	if err := s.contacts.Create(c.Request.Context(), contact); err != nil {
		s.respondRepoError(c, err, "contact")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": contact})
}

func (s *Server) updateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	contact := &models.EmergencyContact{
		ID:           id,
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Email:        req.Email,
		IsPrimary:    req.IsPrimary,
	}

	if err := s.contacts.Update(c.Request.Context(), contact); err != nil {
		s.respondRepoError(c, err, "contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": contact})
}

func (s *Server) listContacts(c *gin.Context) {
	contacts, err := s.contacts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list contacts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": contacts})
}

func (s *Server) deleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}
	if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
		s.respondRepoError(c, err, "contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondRepoError maps repository errors to HTTP statuses
func (s *Server) respondRepoError(c *gin.Context, err error, resource string) {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": resource + " not found"})
	case errors.CodeInvalidInput, errors.CodeValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to access " + resource})
	}
}
