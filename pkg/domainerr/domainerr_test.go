package domainerr

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestValidationError_Aggregates(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("name", "must be 3-100 characters")
	ve.Add("email", "invalid format")

	err := ve.OrNil()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "name") || !strings.Contains(msg, "email") {
		t.Errorf("expected both fields in message, got %q", msg)
	}
}

func TestValidationError_OrNilEmpty(t *testing.T) {
	ve := &ValidationError{}
	if err := ve.OrNil(); err != nil {
		t.Errorf("expected nil for no violations, got %v", err)
	}
}

func TestStateError_Message(t *testing.T) {
	err := State("COMPLETED", "CANCELLED")
	if !strings.Contains(err.Error(), "COMPLETED") || !strings.Contains(err.Error(), "CANCELLED") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	err := NotFound("doctor", "abc")
	if !IsNotFound(err) {
		t.Error("expected IsNotFound true")
	}
	wrapped := fmt.Errorf("lookup: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("expected IsNotFound true for wrapped error")
	}
	if IsNotFound(fmt.Errorf("boom")) {
		t.Error("expected IsNotFound false for unrelated error")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("name", "required"), http.StatusBadRequest},
		{NotFound("patient", "x"), http.StatusNotFound},
		{Conflict("doctor already booked"), http.StatusConflict},
		{State("CANCELLED", "COMPLETED"), http.StatusUnprocessableEntity},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
		{fmt.Errorf("save: %w", Conflict("overlap")), http.StatusConflict},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
