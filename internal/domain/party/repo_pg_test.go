package party

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinic/clinic/pkg/domainerr"
)

func TestActiveEmailIndexViolationReadsAsFieldError(t *testing.T) {
	raced := &pgconn.PgError{Code: "23505", ConstraintName: "doctor_email_active_uq"}

	err := activeEmailTaken(raced, "doctor_email_active_uq")
	var ve *domainerr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "email" || ve.Fields[0].Message != "already registered" {
		t.Errorf("fields = %+v", ve.Fields)
	}
}

func TestActiveEmailTakenPassesOtherErrorsThrough(t *testing.T) {
	other := &pgconn.PgError{Code: "23505", ConstraintName: "appointment_doctor_slot_uq"}
	if got := activeEmailTaken(other, "doctor_email_active_uq"); !errors.Is(got, other) {
		t.Errorf("unrelated constraint rewritten: %v", got)
	}
	if got := activeEmailTaken(nil, "doctor_email_active_uq"); got != nil {
		t.Errorf("nil in, got %v", got)
	}
}
