package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinic/clinic/internal/domain/party"
	"github.com/clinic/clinic/pkg/domainerr"
)

// PartyDirectory resolves the two booking parties. Satisfied by
// *party.Service, so soft-deleted parties already read as not found.
type PartyDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*party.Doctor, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*party.Patient, error)
}

// TxRunner runs a function inside a serializable database transaction. The
// conflict check and the write that depends on it share one transaction so
// two concurrent proposals for the same slot cannot both pass the check.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo    Repository
	parties PartyDirectory
	runner  TxRunner
	now     func() time.Time
}

func NewService(repo Repository, parties PartyDirectory, runner TxRunner) *Service {
	return &Service{repo: repo, parties: parties, runner: runner, now: time.Now}
}

type ProposeParams struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	AppointmentTime time.Time `json:"appointment_time"`
}

// Propose books a new one-hour appointment. The start must be strictly in
// the future and must not overlap any active appointment of the doctor.
func (s *Service) Propose(ctx context.Context, p ProposeParams) (*Appointment, error) {
	if err := s.validateStart(p.AppointmentTime); err != nil {
		return nil, err
	}
	d, err := s.parties.GetDoctor(ctx, p.DoctorID)
	if err != nil {
		return nil, err
	}
	pt, err := s.parties.GetPatient(ctx, p.PatientID)
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		UUID:            uuid.New(),
		DoctorID:        d.ID,
		DoctorUUID:      d.UUID,
		PatientID:       pt.ID,
		PatientUUID:     pt.UUID,
		AppointmentTime: p.AppointmentTime.UTC(),
		Status:          StatusScheduled,
	}
	err = s.runner.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, d.ID, a.AppointmentTime, 0); err != nil {
			return err
		}
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		return nil, conflictFromRace(err, a.AppointmentTime)
	}
	return a, nil
}

// Reschedule moves a SCHEDULED appointment to a new future start, subject to
// the same overlap rule. The appointment's own slot does not count against
// itself.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newTime time.Time) (*Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled {
		return nil, domainerr.State(string(a.Status), string(StatusScheduled))
	}
	if err := s.validateStart(newTime); err != nil {
		return nil, err
	}

	err = s.runner.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, a.DoctorID, newTime.UTC(), a.ID); err != nil {
			return err
		}
		a.AppointmentTime = newTime.UTC()
		return s.repo.Update(ctx, a)
	})
	if err != nil {
		return nil, conflictFromRace(err, newTime.UTC())
	}
	return a, nil
}

// Complete marks a SCHEDULED appointment as held.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted, nil)
}

// Cancel marks a SCHEDULED appointment as cancelled. A non-blank reason is
// required.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerr.Validation("reason", "is required")
	}
	return s.transition(ctx, id, StatusCancelled, &reason)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next Status, reason *string) (*Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, domainerr.State(string(a.Status), string(next))
	}
	a.Status = next
	a.CancelReason = reason
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SoftDelete removes the appointment from listings and frees its interval.
// Any status may be deleted; the row survives for the audit trail.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	a.IsDeleted = true
	return s.repo.Update(ctx, a)
}

// Get returns the appointment, soft-deleted or not. Deleted appointments
// stay addressable by id; they only vanish from listings and overlap checks.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	d, err := s.parties.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListByDoctor(ctx, d.ID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	p, err := s.parties.GetPatient(ctx, patientID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListByPatient(ctx, p.ID, limit, offset)
}

// DoctorSchedule returns the doctor's non-deleted appointments on the given
// calendar day, ordered by start time.
func (s *Service) DoctorSchedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]*Appointment, error) {
	d, err := s.parties.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDoctorOnDate(ctx, d.ID, day)
}

func (s *Service) validateStart(start time.Time) error {
	ve := &domainerr.ValidationError{}
	if start.IsZero() {
		ve.Add("appointment_time", "is required")
	} else if !start.After(s.now()) {
		ve.Add("appointment_time", "must be in the future")
	}
	return ve.OrNil()
}

const (
	slotUniqueConstraint     = "appointment_doctor_slot_uq"
	uniqueViolationCode      = "23505"
	serializationFailureCode = "40001"
)

// conflictFromRace translates the database's own double-booking stops into
// the conflict error callers expect. A proposal racing another for the same
// interval can pass the overlap count and still fail on the partial unique
// slot index, or on a serialization failure at commit; in either case the
// slot went to the other transaction.
func conflictFromRace(err error, start time.Time) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code == serializationFailureCode ||
		(pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == slotUniqueConstraint) {
		return domainerr.Conflict("doctor already booked around %s", start.Format(time.RFC3339))
	}
	return err
}

func (s *Service) ensureFree(ctx context.Context, doctorID int64, start time.Time, excludeID int64) error {
	n, err := s.repo.CountOverlapping(ctx, doctorID, start, start.Add(SlotDuration), excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domainerr.Conflict("doctor already booked around %s", start.Format(time.RFC3339))
	}
	return nil
}
