package excel

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"flarelog/models"
)

// Exporter writes health history as an xlsx workbook: one sheet for symptom
// entries, one for medications, one for emergency contacts.
type Exporter struct{}

// NewExporter creates a workbook exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the workbook in memory; the caller streams or saves it
func (e *Exporter) Export(symptoms []models.SymptomRecord, medications []models.MedicationRecord, contacts []models.EmergencyContact) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.writeSymptomSheet(f, symptoms); err != nil {
		return nil, fmt.Errorf("write symptom sheet: %w", err)
	}
	if err := e.writeMedicationSheet(f, medications); err != nil {
		return nil, fmt.Errorf("write medication sheet: %w", err)
	}
	if err := e.writeContactSheet(f, contacts); err != nil {
		return nil, fmt.Errorf("write contact sheet: %w", err)
	}

	// Drop the default sheet left behind by excelize
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Printf("[Exporter] Could not remove default sheet: %v", err)
	}

	log.Printf("[Exporter] Workbook built: %d symptoms, %d medications, %d contacts",
		len(symptoms), len(medications), len(contacts))
	return f, nil
}

func (e *Exporter) writeSymptomSheet(f *excelize.File, records []models.SymptomRecord) error {
	const sheet = "Symptoms"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Date", "Severity", "Symptoms Present", "Temperature", "Humidity", "Conditions", "Notes"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, rec := range records {
		values := []interface{}{
			rec.Date.Format("2006-01-02"),
			rec.Severity.String(),
			strings.Join(rec.Symptoms.PresentNames(), ", "),
			nil, nil, nil,
			rec.Notes,
		}
		if rec.Weather != nil {
			values[3] = rec.Weather.Temperature
			values[4] = rec.Weather.Humidity
			values[5] = rec.Weather.Description
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writeMedicationSheet(f *excelize.File, records []models.MedicationRecord) error {
	const sheet = "Medications"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Name", "Dosage", "Frequency", "Times", "Start Date", "End Date", "Reminders", "Notes"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, rec := range records {
		endDate := "ongoing"
		if rec.EndDate != nil {
			endDate = rec.EndDate.Format("2006-01-02")
		}
		values := []interface{}{
			rec.Name,
			rec.Dosage,
			string(rec.Frequency),
			strings.Join(rec.Times, ", "),
			rec.StartDate.Format("2006-01-02"),
			endDate,
			rec.ReminderEnabled,
			rec.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writeContactSheet(f *excelize.File, contacts []models.EmergencyContact) error {
	const sheet = "Emergency Contacts"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Name", "Relationship", "Phone", "Email", "Primary"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, contact := range contacts {
		values := []interface{}{contact.Name, contact.Relationship, contact.Phone, contact.Email, contact.IsPrimary}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
