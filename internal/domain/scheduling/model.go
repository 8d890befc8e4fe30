// Package scheduling is the appointment ledger. Every visit is a fixed
// one-hour interval owned by one doctor and one patient; the service layer
// guards the doctor's calendar against overlapping active bookings and
// drives the SCHEDULED -> COMPLETED | CANCELLED lifecycle.
package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Status is the appointment lifecycle state.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the transition s -> next is legal. Only
// SCHEDULED appointments move; COMPLETED and CANCELLED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusScheduled && next.Terminal()
}

// SlotDuration is the fixed length of every appointment.
const SlotDuration = time.Hour

// Appointment maps to the appointment table. Foreign keys stay numeric and
// internal; the JSON surface carries the party uuids resolved by a join.
type Appointment struct {
	ID              int64     `db:"id" json:"-"`
	UUID            uuid.UUID `db:"uuid" json:"id"`
	DoctorID        int64     `db:"doctor_id" json:"-"`
	DoctorUUID      uuid.UUID `db:"doctor_uuid" json:"doctor_id"`
	PatientID       int64     `db:"patient_id" json:"-"`
	PatientUUID     uuid.UUID `db:"patient_uuid" json:"patient_id"`
	AppointmentTime time.Time `db:"appointment_time" json:"appointment_time"`
	Status          Status    `db:"status" json:"status"`
	CancelReason    *string   `db:"cancel_reason" json:"cancel_reason,omitempty"`
	IsDeleted       bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// EndTime is the exclusive end of the appointment's interval.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(SlotDuration)
}

// Overlaps reports whether the half-open interval [start, start+1h) collides
// with this appointment's interval. Back-to-back bookings do not collide.
func (a *Appointment) Overlaps(start time.Time) bool {
	end := start.Add(SlotDuration)
	return a.AppointmentTime.Before(end) && start.Before(a.EndTime())
}

func (a *Appointment) Date() string {
	return a.AppointmentTime.Format("2006-01-02")
}

func (a *Appointment) TimeOfDay() string {
	return a.AppointmentTime.Format("15:04")
}
