package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"flarelog/adapters/llm/heuristic"
	"flarelog/adapters/weather"
	"flarelog/app"
	"flarelog/internal/errors"
	"flarelog/internal/reminder"
	"flarelog/models"
	"flarelog/ports"
)

// In-memory repositories; enough behavior to drive the handlers.

type memSymptomRepo struct {
	byDate map[string]*models.SymptomRecord
}

func newMemSymptomRepo() *memSymptomRepo {
	return &memSymptomRepo{byDate: make(map[string]*models.SymptomRecord)}
}

func (r *memSymptomRepo) Save(ctx context.Context, record *models.SymptomRecord) error {
	r.byDate[record.DateKey()] = record
	return nil
}

func (r *memSymptomRepo) GetByDate(ctx context.Context, date time.Time) (*models.SymptomRecord, error) {
	if rec, ok := r.byDate[date.Format("2006-01-02")]; ok {
		return rec, nil
	}
	return nil, errors.NotFound("symptom record")
}

func (r *memSymptomRepo) ListRange(ctx context.Context, from, to time.Time) ([]models.SymptomRecord, error) {
	var out []models.SymptomRecord
	for _, rec := range r.byDate {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memSymptomRepo) ListRecent(ctx context.Context, limit int) ([]models.SymptomRecord, error) {
	var out []models.SymptomRecord
	for _, rec := range r.byDate {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSymptomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for key, rec := range r.byDate {
		if rec.ID == id {
			delete(r.byDate, key)
			return nil
		}
	}
	return errors.NotFound("symptom record")
}

type memMedicationRepo struct {
	byID map[uuid.UUID]*models.MedicationRecord
}

func newMemMedicationRepo() *memMedicationRepo {
	return &memMedicationRepo{byID: make(map[uuid.UUID]*models.MedicationRecord)}
}

func (r *memMedicationRepo) Create(ctx context.Context, record *models.MedicationRecord) error {
	r.byID[record.ID] = record
	return nil
}

func (r *memMedicationRepo) Update(ctx context.Context, record *models.MedicationRecord) error {
	if _, ok := r.byID[record.ID]; !ok {
		return errors.NotFound("medication record")
	}
	r.byID[record.ID] = record
	return nil
}

func (r *memMedicationRepo) Get(ctx context.Context, id uuid.UUID) (*models.MedicationRecord, error) {
	if rec, ok := r.byID[id]; ok {
		return rec, nil
	}
	return nil, errors.NotFound("medication record")
}

func (r *memMedicationRepo) List(ctx context.Context) ([]models.MedicationRecord, error) {
	var out []models.MedicationRecord
	for _, rec := range r.byID {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *memMedicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return errors.NotFound("medication record")
	}
	delete(r.byID, id)
	return nil
}

type memContactRepo struct {
	byID map[uuid.UUID]*models.EmergencyContact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{byID: make(map[uuid.UUID]*models.EmergencyContact)}
}

func (r *memContactRepo) Create(ctx context.Context, contact *models.EmergencyContact) error {
	r.byID[contact.ID] = contact
	return nil
}

func (r *memContactRepo) Update(ctx context.Context, contact *models.EmergencyContact) error {
	if _, ok := r.byID[contact.ID]; !ok {
		return errors.NotFound("contact")
	}
	r.byID[contact.ID] = contact
	return nil
}

func (r *memContactRepo) List(ctx context.Context) ([]models.EmergencyContact, error) {
	var out []models.EmergencyContact
	for _, rec := range r.byID {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *memContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return errors.NotFound("contact")
	}
	delete(r.byID, id)
	return nil
}

func newTestServer(t *testing.T, symptomRepo ports.SymptomRepository) *Server {
	t.Helper()

	scheduler := reminder.NewScheduler(func(med *models.MedicationRecord, due time.Time) {})
	t.Cleanup(scheduler.Stop)

	weatherProvider := weather.NewSimulatedProvider()
	insights := app.NewInsightService(heuristic.NewSynthesizer())
	symptoms := app.NewSymptomService(symptomRepo, weatherProvider)
	medications := app.NewMedicationService(newMemMedicationRepo(), scheduler)

	return NewServer(Config{GinMode: "test"}, insights, symptoms, medications, newMemContactRepo(), weatherProvider)
}

func seedSymptoms(t *testing.T, repo *memSymptomRepo, days int) {
	t.Helper()
	for i := 0; i < days; i++ {
		rec := models.NewSymptomRecord(
			time.Now().AddDate(0, 0, -i),
			models.SeverityModerate,
			models.SymptomPresence{"fatigue": true},
			"",
		)
		if err := repo.Save(context.Background(), rec); err != nil {
			t.Fatalf("Seeding failed: %v", err)
		}
	}
}

func doJSON(t *testing.T, server *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("Response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, decoded
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, newMemSymptomRepo())
	w, _ := doJSON(t, server, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestGenerateInsightsEndpoint(t *testing.T) {
	repo := newMemSymptomRepo()
	seedSymptoms(t, repo, 8)
	server := newTestServer(t, repo)

	w, body := doJSON(t, server, http.MethodPost, "/api/insights/generate", map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("Expected success, got %v", body)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) == 0 {
		t.Fatalf("Expected insight list, got %v", body["data"])
	}
	first, _ := data[0].(map[string]any)
	if first["html"] == "" || first["insight"] == "" {
		t.Errorf("Expected rendered insight views, got %v", first)
	}
	// Heuristic generator backs the test server, so the fallback banner shows
	if body["notice"] != "Showing basic analysis instead." {
		t.Errorf("Expected fallback notice, got %v", body["notice"])
	}
}

func TestGenerateInsightsInsufficientData(t *testing.T) {
	repo := newMemSymptomRepo()
	seedSymptoms(t, repo, 3)
	server := newTestServer(t, repo)

	w, body := doJSON(t, server, http.MethodPost, "/api/insights/generate", map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("Insufficient data is an instructional state, expected 200, got %d", w.Code)
	}
	if body["success"] != false {
		t.Errorf("Expected success=false, got %v", body)
	}
}

func TestGeneratePatternsEndpoint(t *testing.T) {
	repo := newMemSymptomRepo()
	seedSymptoms(t, repo, 15)
	server := newTestServer(t, repo)

	w, body := doJSON(t, server, http.MethodPost, "/api/patterns/generate", map[string]any{
		"time_range_months": 6,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) == 0 {
		t.Fatalf("Expected pattern list, got %v", body["data"])
	}

	w, _ = doJSON(t, server, http.MethodPost, "/api/patterns/generate", map[string]any{
		"time_range_months": 7,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid range, got %d", w.Code)
	}
}

func TestSymptomRoundTrip(t *testing.T) {
	server := newTestServer(t, newMemSymptomRepo())

	w, body := doJSON(t, server, http.MethodPut, "/api/symptoms/2026-03-09", map[string]any{
		"severity": "moderate",
		"symptoms": map[string]bool{"fatigue": true, "rash": false},
		"notes":    "long day",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("Expected success, got %v", body)
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/symptoms/2026-03-09", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on readback, got %d", w.Code)
	}
	data, _ := body["data"].(map[string]any)
	if data["notes"] != "long day" {
		t.Errorf("Unexpected readback: %v", data)
	}

	w, _ = doJSON(t, server, http.MethodGet, "/api/symptoms/2026-03-10", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing date, got %d", w.Code)
	}

	w, _ = doJSON(t, server, http.MethodPut, "/api/symptoms/not-a-date", map[string]any{"severity": "mild"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad date, got %d", w.Code)
	}
}

func TestMedicationEndpoints(t *testing.T) {
	server := newTestServer(t, newMemSymptomRepo())

	w, body := doJSON(t, server, http.MethodPost, "/api/medications", map[string]any{
		"name":       "Methotrexate",
		"dosage":     "15mg",
		"frequency":  "weekly",
		"times":      []string{"09:00"},
		"start_date": "2026-01-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("Expected created medication id")
	}

	w, _ = doJSON(t, server, http.MethodPut, fmt.Sprintf("/api/medications/%s/reminder", id), map[string]any{"enabled": true})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 enabling reminder, got %d: %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, server, http.MethodPost, "/api/medications", map[string]any{
		"name":       "Bad",
		"dosage":     "1mg",
		"frequency":  "hourly",
		"start_date": "2026-01-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown frequency, got %d", w.Code)
	}

	w, _ = doJSON(t, server, http.MethodDelete, "/api/medications/"+id, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on delete, got %d", w.Code)
	}
}

func TestContactEndpoints(t *testing.T) {
	server := newTestServer(t, newMemSymptomRepo())

	w, body := doJSON(t, server, http.MethodPost, "/api/contacts", map[string]any{
		"name":       "Alex Rivera",
		"phone":      "+1-555-0142",
		"is_primary": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["name"] != "Alex Rivera" {
		t.Errorf("Unexpected contact: %v", data)
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/contacts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if list, _ := body["data"].([]any); len(list) != 1 {
		t.Errorf("Expected 1 contact, got %v", body["data"])
	}
}

func TestExportEndpoint(t *testing.T) {
	repo := newMemSymptomRepo()
	seedSymptoms(t, repo, 3)
	server := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected workbook bytes")
	}
}

func TestRenderInsightHTML(t *testing.T) {
	html := RenderInsightHTML("Your **joint pain** entries cluster on humid days.")
	if !bytes.Contains([]byte(html), []byte("<strong>joint pain</strong>")) {
		t.Errorf("Expected bold rendering, got %q", html)
	}

	// Raw HTML in generated text must not pass through
	html = RenderInsightHTML(`Try <script>alert(1)</script> this`)
	if bytes.Contains([]byte(html), []byte("<script>")) {
		t.Errorf("Raw HTML should be skipped, got %q", html)
	}
}
