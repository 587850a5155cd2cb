package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"flarelog/adapters/postgres"
	"flarelog/adapters/weather"
	"flarelog/internal/migration"
	"flarelog/models"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Demo coordinates (Seattle); the simulated provider only needs something
// plausible to derive weather from.
const (
	demoLat = 47.6062
	demoLon = -122.3321
)

func main() {
	_ = godotenv.Load()

	days := flag.Int("days", 120, "number of days of history to generate")
	seed := flag.Int64("seed", 42, "random seed for repeatable data")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	provider := weather.NewSimulatedProvider()

	symptomRepo := postgres.NewSymptomRepository(db)
	saved := 0
	for i := *days; i >= 0; i-- {
		// skip some days so the history has realistic gaps
		if rng.Float64() < 0.25 {
			continue
		}
		date := time.Now().AddDate(0, 0, -i)

		severity := models.Severity(rng.Intn(4))
		symptoms := models.SymptomPresence{}
		for _, name := range models.DefaultSymptomTypes {
			if rng.Float64() < 0.2+0.15*float64(severity) {
				symptoms[name] = true
			}
		}

		record := models.NewSymptomRecord(date, severity, symptoms, "")
		record.Weather = provider.ForDate(date, demoLat, demoLon)

		if err := symptomRepo.Save(ctx, record); err != nil {
			log.Fatalf("Failed to save entry for %s: %v", date.Format("2006-01-02"), err)
		}
		saved++
	}
	log.Printf("Seeded %d symptom entries", saved)

	medicationRepo := postgres.NewMedicationRepository(db)
	medications := []*models.MedicationRecord{
		models.NewMedicationRecord("Methotrexate", "15mg", models.FrequencyWeekly, models.ClockTimes{"09:00"}, time.Now().AddDate(0, -6, 0)),
		models.NewMedicationRecord("Folic Acid", "5mg", models.FrequencyDaily, models.ClockTimes{"08:00"}, time.Now().AddDate(0, -6, 0)),
		models.NewMedicationRecord("Naproxen", "250mg", models.FrequencyAsNeeded, nil, time.Now().AddDate(0, -2, 0)),
	}
	for _, med := range medications {
		if err := medicationRepo.Create(ctx, med); err != nil {
			log.Fatalf("Failed to create medication %s: %v", med.Name, err)
		}
	}
	log.Printf("Seeded %d medications", len(medications))

	contactRepo := postgres.NewContactRepository(db)
	contact := models.NewEmergencyContact("Alex Rivera", "partner", "+1-555-0142")
	contact.IsPrimary = true
	if err := contactRepo.Create(ctx, contact); err != nil {
		log.Fatalf("Failed to create contact: %v", err)
	}
	log.Println("Seeded emergency contact")
}
