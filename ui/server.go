package ui

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"flarelog/adapters/excel"
	"flarelog/app"
	"flarelog/ports"
)

// Server is the JSON API surface of the tracker
type Server struct {
	router *gin.Engine

	insights    *app.InsightService
	symptoms    *app.SymptomService
	medications *app.MedicationService
	contacts    ports.ContactRepository
	weather     ports.WeatherPort
	exporter    *excel.Exporter
}

// Config holds server settings
type Config struct {
	Port    string
	GinMode string
}

// NewServer wires handlers over the services
func NewServer(config Config, insights *app.InsightService, symptoms *app.SymptomService, medications *app.MedicationService, contacts ports.ContactRepository, weather ports.WeatherPort) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	s := &Server{
		router:      gin.Default(),
		insights:    insights,
		symptoms:    symptoms,
		medications: medications,
		contacts:    contacts,
		weather:     weather,
		exporter:    excel.NewExporter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.POST("/insights/generate", s.generateInsights)
	api.POST("/patterns/generate", s.generatePatterns)

	api.GET("/symptoms", s.listSymptoms)
	api.GET("/symptoms/:date", s.getSymptomByDate)
	api.PUT("/symptoms/:date", s.saveSymptom)
	api.DELETE("/symptoms/:id", s.deleteSymptom)

	api.GET("/medications", s.listMedications)
	api.POST("/medications", s.createMedication)
	api.PUT("/medications/:id", s.updateMedication)
	api.PUT("/medications/:id/reminder", s.setMedicationReminder)
	api.DELETE("/medications/:id", s.deleteMedication)

	api.GET("/contacts", s.listContacts)
	api.POST("/contacts", s.createContact)
	api.PUT("/contacts/:id", s.updateContact)
	api.DELETE("/contacts/:id", s.deleteContact)

	api.GET("/weather", s.getWeather)
	api.GET("/export", s.exportWorkbook)

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Run starts the HTTP server on the configured port
func (s *Server) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
