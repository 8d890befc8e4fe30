package party

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	svc, _, _ := newTestService()
	e := echo.New()
	api := e.Group("/api/v1", auth.DevAuthMiddleware())
	NewHandler(svc).RegisterRoutes(api)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const doctorJSON = `{
	"name": "Gregory House",
	"specialty": "Diagnostics",
	"email": "house@clinic.example",
	"password": "vicodin",
	"phone": "555-123-4567"
}`

func TestDoctorLifecycleHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/doctors", doctorJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected id in response, got %v", created)
	}
	if _, leaked := created["password_hash"]; leaked {
		t.Error("password hash must not be serialized")
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/doctors/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/doctors/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/doctors/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestCreateDoctorBadPayloadHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/doctors", `{"name":"Al","email":"x","password":"a","phone":"1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
		Fields  []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "validation failed" || len(body.Fields) == 0 {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetDoctorInvalidID(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/doctors/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListDoctorsHTTP(t *testing.T) {
	e := newTestServer(t)

	if rec := doJSON(e, http.MethodPost, "/api/v1/doctors", doctorJSON); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/doctors?specialty=Diagnostics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("total = %d", page.Total)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/doctors?specialty=Cardiology", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
}

func TestPatientRoutesRequireRole(t *testing.T) {
	svc, _, _ := newTestService()
	e := echo.New()
	api := e.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	// No auth middleware on this server, so no roles are present.
	rec := doJSON(e, http.MethodGet, "/api/v1/patients", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}
