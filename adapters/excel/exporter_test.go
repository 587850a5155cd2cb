package excel

import (
	"testing"
	"time"

	"flarelog/models"
)

func TestExportSheets(t *testing.T) {
	rec := models.NewSymptomRecord(
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		models.SeverityModerate,
		models.SymptomPresence{"fatigue": true, "joint pain": true},
		"rough day",
	)
	rec.Weather = &models.WeatherSnapshot{Temperature: 8.5, Humidity: 81, Description: "light rain"}

	med := models.NewMedicationRecord("Methotrexate", "15mg", models.FrequencyWeekly, models.ClockTimes{"09:00"}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	contact := models.NewEmergencyContact("Alex Rivera", "partner", "+1-555-0142")

	f, err := NewExporter().Export(
		[]models.SymptomRecord{*rec},
		[]models.MedicationRecord{*med},
		[]models.EmergencyContact{*contact},
	)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Symptoms", "Medications", "Emergency Contacts"} {
		if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
			t.Errorf("Missing sheet %q", sheet)
		}
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("Default sheet should be removed")
	}

	date, err := f.GetCellValue("Symptoms", "A2")
	if err != nil || date != "2026-03-09" {
		t.Errorf("Unexpected date cell: %q (%v)", date, err)
	}
	symptoms, _ := f.GetCellValue("Symptoms", "C2")
	if symptoms != "fatigue, joint pain" {
		t.Errorf("Unexpected symptoms cell: %q", symptoms)
	}
	name, _ := f.GetCellValue("Medications", "A2")
	if name != "Methotrexate" {
		t.Errorf("Unexpected medication cell: %q", name)
	}
	end, _ := f.GetCellValue("Medications", "F2")
	if end != "ongoing" {
		t.Errorf("Expected ongoing end date, got %q", end)
	}
}

func TestExportEmptyHistory(t *testing.T) {
	f, err := NewExporter().Export(nil, nil, nil)
	if err != nil {
		t.Fatalf("Export of empty history failed: %v", err)
	}
	defer f.Close()

	header, _ := f.GetCellValue("Symptoms", "A1")
	if header != "Date" {
		t.Errorf("Expected header row, got %q", header)
	}
}
