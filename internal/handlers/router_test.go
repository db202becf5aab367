package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"

	"github.com/surcoapps/mantgo/internal/ai"
	"github.com/surcoapps/mantgo/internal/config"
	"github.com/surcoapps/mantgo/internal/database"
	"github.com/surcoapps/mantgo/internal/evidence"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/report"
	"github.com/surcoapps/mantgo/internal/store"
)

// echoEngine is a merge engine that returns fixed bytes.
type echoEngine struct{}

func (echoEngine) Merge(templatePath string, mc *report.MergeContext) ([]byte, error) {
	return []byte("docx"), nil
}

func newTestRouter(t *testing.T) (*Router, *store.Store, uint) {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	st := store.New(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	class := &models.EquipmentClass{Name: "TANQUES"}
	if err := st.CreateClass(class); err != nil {
		t.Fatalf("Failed to create class: %v", err)
	}

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret",
		Storage: config.StorageConfig{
			UploadDir:  t.TempDir(),
			ReportsDir: t.TempDir(),
		},
	}

	ev := evidence.NewManager(cfg.Storage.UploadDir, st)
	compiler := report.NewCompiler(st, echoEngine{}, "template.docx",
		cfg.Storage.ReportsDir, cfg.Storage.UploadDir, "http://localhost:3310")
	drafter := ai.NewDrafter(nil, st)

	return NewRouter(cfg, st, drafter, compiler, ev), st, class.ID
}

func doRequest(rt *Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func authToken(t *testing.T, rt *Router) string {
	t.Helper()
	body := `{"email":"tech@example.com","password":"secret123","name":"Tech"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	rec := doRequest(rt, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Registration failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode registration response: %v", err)
	}
	return resp.Tokens.AccessToken
}

func eventForm(t *testing.T, classID uint, fields map[string]string, photos ...string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	defaults := map[string]string{
		"class_id":          strconv.FormatUint(uint64(classID), 10),
		"area":              models.AreaMechanical,
		"location":          "Batería Norte",
		"maintenance_type":  "Preventivo",
		"asset_description": "Bomba P-101",
		"maintenance_code":  "MP-001",
		"scheduled_month":   "3",
	}
	for k, v := range fields {
		defaults[k] = v
	}
	for k, v := range defaults {
		mw.WriteField(k, v)
	}
	for _, name := range photos {
		fw, err := mw.CreateFormFile("evidences", name)
		if err != nil {
			t.Fatalf("Failed to add file part: %v", err)
		}
		fw.Write([]byte("fake image"))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	rec := doRequest(rt, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestListMaintenancesFilterValidation(t *testing.T) {
	rt, _, _ := newTestRouter(t)

	cases := []string{
		"/api/maintenances?month=0",
		"/api/maintenances?month=13",
		"/api/maintenances?month=abc",
		"/api/maintenances?area=Electricidad",
	}
	for _, url := range cases {
		rec := doRequest(rt, httptest.NewRequest("GET", url, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", url, rec.Code)
		}
	}

	rec := doRequest(rt, httptest.NewRequest("GET", "/api/maintenances?month=3&area=Mecánica", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid filter, got %d", rec.Code)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	rt, _, classID := newTestRouter(t)

	body, contentType := eventForm(t, classID, nil)
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	if rec := doRequest(rt, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest("DELETE", "/api/maintenances/1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	if rec := doRequest(rt, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestCreateMaintenanceWithEvidence(t *testing.T) {
	rt, st, classID := newTestRouter(t)
	token := authToken(t, rt)

	body, contentType := eventForm(t, classID, map[string]string{
		"execution_date": "2026-03-14",
		"author":         "J. Quispe",
	}, "foto 1.JPG")
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := doRequest(rt, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.MaintenanceEvent
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.Status != models.StatusScheduled {
		t.Errorf("Expected default status, got %q", created.Status)
	}
	if created.ExecutionDate == nil {
		t.Error("Expected execution date to be parsed")
	}
	if len(created.Evidences) != 1 {
		t.Fatalf("Expected 1 evidence, got %d", len(created.Evidences))
	}
	if !strings.HasSuffix(created.Evidences[0].Filename, ".jpg") {
		t.Errorf("Expected normalized stored name, got %q", created.Evidences[0].Filename)
	}

	// The record is really in the store
	if _, err := st.EventByID(created.ID); err != nil {
		t.Errorf("Created event not found in store: %v", err)
	}
}

func TestCreateMaintenanceValidationError(t *testing.T) {
	rt, _, classID := newTestRouter(t)
	token := authToken(t, rt)

	body, contentType := eventForm(t, classID, map[string]string{"area": "Electricidad"})
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	if rec := doRequest(rt, req); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid area, got %d", rec.Code)
	}
}

func TestDeleteMaintenance(t *testing.T) {
	rt, st, classID := newTestRouter(t)
	token := authToken(t, rt)

	body, contentType := eventForm(t, classID, nil, "foto.jpg")
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doRequest(rt, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Setup create failed: %d", rec.Code)
	}
	var created models.MaintenanceEvent
	json.NewDecoder(rec.Body).Decode(&created)

	req = httptest.NewRequest("DELETE", "/api/maintenances/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = doRequest(rt, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "eliminados") {
		t.Errorf("Expected confirmation message, got %s", rec.Body.String())
	}

	if _, err := st.EventByID(created.ID); err == nil {
		t.Error("Expected event to be deleted")
	}

	// Deleting again reports not found
	req = httptest.NewRequest("DELETE", "/api/maintenances/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := doRequest(rt, req); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on re-delete, got %d", rec.Code)
	}
}

func TestDraftWithoutProvider(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	token := authToken(t, rt)

	body := `{"area":"Mecánica","maintenanceType":"Preventivo","asset":"Motor","location":"Pozo 1","activities":"Se cambió el aceite."}`
	req := httptest.NewRequest("POST", "/api/draft/detail", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	// No API key configured: the endpoint answers with a server error,
	// not a silent empty draft.
	if rec := doRequest(rt, req); rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 without provider, got %d", rec.Code)
	}
}

func TestCompileReportPrecondition(t *testing.T) {
	rt, _, classID := newTestRouter(t)
	token := authToken(t, rt)

	// Event without structured info, author, supervisor or date
	body, contentType := eventForm(t, classID, nil)
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := doRequest(rt, req); rec.Code != http.StatusCreated {
		t.Fatalf("Setup create failed: %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/maintenances/1/report", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doRequest(rt, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for incomplete event, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "faltan datos clave") {
		t.Errorf("Expected precondition message, got %s", rec.Body.String())
	}
}

func TestCompileAndDownloadReport(t *testing.T) {
	rt, _, classID := newTestRouter(t)
	token := authToken(t, rt)

	body, contentType := eventForm(t, classID, map[string]string{
		"author":          "J. Quispe",
		"supervisor":      "R. Salazar",
		"execution_date":  "2026-03-14",
		"structured_info": `{"strTituloDocumento":"INFORME EA12813"}`,
	})
	req := httptest.NewRequest("POST", "/api/maintenances", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := doRequest(rt, req); rec.Code != http.StatusCreated {
		t.Fatalf("Setup create failed: %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/maintenances/1/report", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := doRequest(rt, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success  bool   `json:"success"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Filename != "report_1.docx" {
		t.Fatalf("Unexpected compile response: %+v", resp)
	}

	// Download carries the title-derived name
	rec = doRequest(rt, httptest.NewRequest("GET", "/reports/"+resp.Filename, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on download, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "INFORME_EA12813.docx") {
		t.Errorf("Expected title-derived download name, got %q", cd)
	}

	// Unknown report is a 404
	rec = doRequest(rt, httptest.NewRequest("GET", "/reports/report_99.docx", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown report, got %d", rec.Code)
	}
}
