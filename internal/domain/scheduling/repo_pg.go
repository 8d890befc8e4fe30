package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/pkg/domainerr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `a.id, a.uuid, a.doctor_id, d.uuid, a.patient_id, p.uuid,
	a.appointment_time, a.status, a.cancel_reason, a.is_deleted, a.created_at, a.updated_at`

const apptFrom = ` FROM appointment a
	JOIN doctor d ON d.id = a.doctor_id
	JOIN patient p ON p.id = a.patient_id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UUID, &a.DoctorID, &a.DoctorUUID, &a.PatientID, &a.PatientUUID,
		&a.AppointmentTime, &a.Status, &a.CancelReason, &a.IsDeleted, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (uuid, doctor_id, patient_id, appointment_time, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`,
		a.UUID, a.DoctorID, a.PatientID, a.AppointmentTime, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+apptFrom+` WHERE a.uuid = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerr.NotFound("appointment", id.String())
	}
	return a, err
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET appointment_time=$2, status=$3, cancel_reason=$4,
			is_deleted=$5, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.AppointmentTime, a.Status, a.CancelReason, a.IsDeleted)
	return err
}

func (r *repoPG) CountOverlapping(ctx context.Context, doctorID int64, start, end time.Time, excludeID int64) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1
		  AND appointment_time < $3
		  AND appointment_time + INTERVAL '1 hour' > $2
		  AND status IN ('SCHEDULED', 'COMPLETED')
		  AND NOT is_deleted
		  AND id <> $4`,
		doctorID, start, end, excludeID).Scan(&n)
	return n, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Appointment, int, error) {
	return r.list(ctx,
		`a.doctor_id = $1 AND NOT a.is_deleted`, doctorID, limit, offset)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return r.list(ctx,
		`a.patient_id = $1 AND NOT a.is_deleted`, patientID, limit, offset)
}

func (r *repoPG) list(ctx context.Context, where string, ownerID int64, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*)`+apptFrom+` WHERE `+where, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+apptFrom+` WHERE `+where+
			` ORDER BY a.appointment_time ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) ListByDoctorOnDate(ctx context.Context, doctorID int64, day time.Time) ([]*Appointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+apptFrom+` WHERE a.doctor_id = $1 AND NOT a.is_deleted
			AND a.appointment_time >= $2 AND a.appointment_time < $3
		 ORDER BY a.appointment_time ASC`,
		doctorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
