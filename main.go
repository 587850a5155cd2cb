package main

import (
	"context"
	"log"

	"flarelog/adapters/llm"
	"flarelog/adapters/llm/heuristic"
	"flarelog/adapters/postgres"
	"flarelog/adapters/weather"
	"flarelog/app"
	"flarelog/internal/config"
	"flarelog/internal/errors"
	"flarelog/internal/migration"
	"flarelog/internal/reminder"
	"flarelog/ports"
	"flarelog/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and brings the schema up to date
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

// buildGenerator selects the insight generator: LLM-backed with a heuristic
// fallback when an API key is configured, pure heuristic otherwise.
func buildGenerator(appConfig *config.Config) (ports.InsightGeneratorPort, error) {
	synthesizer := heuristic.NewSynthesizer()

	if appConfig.AI.OpenAIKey == "" {
		log.Println("No OPENAI_API_KEY set, insights will use local synthesis only")
		return synthesizer, nil
	}

	var fallback ports.InsightGeneratorPort
	if appConfig.AI.FallbackToHeuristic {
		fallback = synthesizer
	}

	return llm.NewInsightAdapter(llm.Config{
		Model:               appConfig.AI.OpenAIModel,
		APIKey:              appConfig.AI.OpenAIKey,
		BaseURL:             appConfig.AI.BaseURL,
		SystemContext:       appConfig.AI.SystemContext,
		Temperature:         appConfig.AI.Temperature,
		MaxTokens:           appConfig.AI.MaxTokens,
		Timeout:             appConfig.AI.Timeout,
		FallbackToHeuristic: appConfig.AI.FallbackToHeuristic,
	}, fallback)
}

func buildWeatherProvider(appConfig *config.Config) ports.WeatherPort {
	if appConfig.Weather.Simulate {
		log.Println("WEATHER_SIMULATE set, serving simulated weather")
		return weather.NewSimulatedProvider()
	}
	return weather.NewOpenWeatherClient(appConfig.Weather.APIKey, appConfig.Weather.BaseURL, 0)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	generator, err := buildGenerator(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize insight generator: %v", err)
	}

	weatherProvider := buildWeatherProvider(appConfig)

	symptomRepo := postgres.NewSymptomRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	contactRepo := postgres.NewContactRepository(db)

	scheduler := reminder.NewScheduler(nil)
	defer scheduler.Stop()

	insightService := app.NewInsightService(generator)
	symptomService := app.NewSymptomService(symptomRepo, weatherProvider)
	medicationService := app.NewMedicationService(medicationRepo, scheduler)

	if err := medicationService.RestoreSchedules(context.Background()); err != nil {
		log.Printf("[Main] Failed to restore reminder schedules: %v", err)
	}

	server := ui.NewServer(ui.Config{
		Port:    appConfig.Server.Port,
		GinMode: appConfig.Server.GinMode,
	}, insightService, symptomService, medicationService, contactRepo, weatherProvider)

	log.Printf("Starting flarelog server on port %s", appConfig.Server.Port)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
