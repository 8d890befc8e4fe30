package scheduling

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func newTestServer(t *testing.T) (*echo.Echo, uuid.UUID, uuid.UUID) {
	t.Helper()
	svc, doctorID, patientID := newTestService()
	e := echo.New()
	api := e.Group("/api/v1", auth.DevAuthMiddleware())
	NewHandler(svc).RegisterRoutes(api)
	return e, doctorID, patientID
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func proposeHTTP(t *testing.T, e *echo.Echo, doctorID, patientID uuid.UUID, start string) string {
	t.Helper()
	body := fmt.Sprintf(`{"doctor_id":%q,"patient_id":%q,"appointment_time":%q}`,
		doctorID, patientID, start)
	rec := doJSON(e, http.MethodPost, "/api/v1/appointments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("propose status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return created.ID
}

func TestAppointmentLifecycleHTTP(t *testing.T) {
	e, doctorID, patientID := newTestServer(t)

	id := proposeHTTP(t, e, doctorID, patientID, "2026-03-02T09:00:00Z")

	rec := doJSON(e, http.MethodGet, "/api/v1/appointments/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPut, "/api/v1/appointments/"+id+"/reschedule",
		`{"appointment_time":"2026-03-02T14:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reschedule status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPut, "/api/v1/appointments/"+id+"/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d", rec.Code)
	}

	// Terminal now; a cancel maps to 422.
	rec = doJSON(e, http.MethodPut, "/api/v1/appointments/"+id+"/cancel", `{"reason":"late"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("cancel after complete status = %d", rec.Code)
	}
}

func TestProposeConflictHTTP(t *testing.T) {
	e, doctorID, patientID := newTestServer(t)

	proposeHTTP(t, e, doctorID, patientID, "2026-03-02T09:00:00Z")

	body := fmt.Sprintf(`{"doctor_id":%q,"patient_id":%q,"appointment_time":"2026-03-02T09:30:00Z"}`,
		doctorID, patientID)
	rec := doJSON(e, http.MethodPost, "/api/v1/appointments", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCancelBlankReasonHTTP(t *testing.T) {
	e, doctorID, patientID := newTestServer(t)

	id := proposeHTTP(t, e, doctorID, patientID, "2026-03-02T09:00:00Z")
	rec := doJSON(e, http.MethodPut, "/api/v1/appointments/"+id+"/cancel", `{"reason":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDoctorScheduleHTTP(t *testing.T) {
	e, doctorID, patientID := newTestServer(t)

	proposeHTTP(t, e, doctorID, patientID, "2026-03-02T09:00:00Z")
	proposeHTTP(t, e, doctorID, patientID, "2026-03-02T11:00:00Z")

	rec := doJSON(e, http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/schedule?date=2026-03-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Appointments []json.RawMessage `json:"appointments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Errorf("got %d appointments", len(resp.Appointments))
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/doctors/"+doctorID.String()+"/schedule?date=March-2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", rec.Code)
	}
}

func TestUnknownAppointmentHTTP(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
