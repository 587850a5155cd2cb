package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flarelog/internal"
)

func (s *Server) getWeather(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "lat and lon query parameters required"})
		return
	}

	snapshot, err := s.weather.Current(c.Request.Context(), lat, lon)
	if err != nil {
		internal.DefaultLogger.Warn("Weather lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "weather service unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": snapshot})
}

// exportWorkbook streams the full history as an Excel workbook.
func (s *Server) exportWorkbook(c *gin.Context) {
	ctx := c.Request.Context()

	symptoms, err := s.symptoms.ListRecent(ctx, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load entries"})
		return
	}
	medications, err := s.medications.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load medications"})
		return
	}
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load contacts"})
		return
	}

	file, err := s.exporter.Export(symptoms, medications, contacts)
	if err != nil {
		internal.DefaultLogger.Error("Workbook export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to build workbook"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("health-history-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := file.Write(c.Writer); err != nil {
		internal.DefaultLogger.Error("Workbook write failed: %v", err)
	}
}
