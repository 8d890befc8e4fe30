package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	// CountOverlapping counts active appointments of the doctor whose
	// one-hour interval collides with [start, end), excluding excludeID.
	// Pass excludeID 0 when proposing a new appointment.
	CountOverlapping(ctx context.Context, doctorID int64, start, end time.Time, excludeID int64) (int, error)
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
	ListByDoctorOnDate(ctx context.Context, doctorID int64, day time.Time) ([]*Appointment, error)
}
