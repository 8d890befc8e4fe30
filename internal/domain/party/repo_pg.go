package party

import (
	"context"
	"errors"
	"fmt"

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

// activeEmailTaken translates a violation of the partial unique email index
// into the same field error the pre-insert EmailInUse check reports. The
// check and the insert run on separate statements, so a concurrent signup
// for the same address can reach the index.
func activeEmailTaken(err error, constraint string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint {
		return domainerr.Validation("email", "already registered")
	}
	return err
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, uuid, name, specialty, email, password_hash, phone,
	years_of_experience, clinic_address, is_deleted, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UUID, &d.Name, &d.Specialty, &d.Email, &d.PasswordHash, &d.Phone,
		&d.YearsOfExperience, &d.ClinicAddress, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (uuid, name, specialty, email, password_hash, phone,
			years_of_experience, clinic_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		d.UUID, d.Name, d.Specialty, d.Email, d.PasswordHash, d.Phone,
		d.YearsOfExperience, d.ClinicAddress).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return activeEmailTaken(err, "doctor_email_active_uq")
}

func (r *doctorRepoPG) GetByUUID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE uuid = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerr.NotFound("doctor", id.String())
	}
	return d, err
}

func (r *doctorRepoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE email = $1 AND NOT is_deleted`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerr.NotFound("doctor", email)
	}
	return d, err
}

func (r *doctorRepoPG) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM doctor WHERE email = $1 AND NOT is_deleted AND id <> $2
		)`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET name=$2, specialty=$3, phone=$4,
			years_of_experience=$5, clinic_address=$6, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialty, d.Phone, d.YearsOfExperience, d.ClinicAddress)
	return err
}

func (r *doctorRepoPG) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE doctor SET is_deleted=$2, updated_at=NOW() WHERE id = $1`, id, deleted)
	return err
}

func (r *doctorRepoPG) List(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error) {
	query := `SELECT ` + doctorCols + ` FROM doctor WHERE NOT is_deleted`
	countQuery := `SELECT COUNT(*) FROM doctor WHERE NOT is_deleted`
	var args []interface{}
	idx := 1

	if specialty != "" {
		query += fmt.Sprintf(` AND specialty = $%d`, idx)
		countQuery += fmt.Sprintf(` AND specialty = $%d`, idx)
		args = append(args, specialty)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, uuid, name, email, password_hash, phone, address,
	date_of_birth, gender, is_deleted, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.Address,
		&p.DateOfBirth, &p.Gender, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (uuid, name, email, password_hash, phone, address,
			date_of_birth, gender)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		p.UUID, p.Name, p.Email, p.PasswordHash, p.Phone, p.Address,
		p.DateOfBirth, p.Gender).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return activeEmailTaken(err, "patient_email_active_uq")
}

func (r *patientRepoPG) GetByUUID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE uuid = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerr.NotFound("patient", id.String())
	}
	return p, err
}

func (r *patientRepoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE email = $1 AND NOT is_deleted`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerr.NotFound("patient", email)
	}
	return p, err
}

func (r *patientRepoPG) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM patient WHERE email = $1 AND NOT is_deleted AND id <> $2
		)`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, phone=$3, address=$4, date_of_birth=$5,
			gender=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Phone, p.Address, p.DateOfBirth, p.Gender)
	return err
}

func (r *patientRepoPG) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE patient SET is_deleted=$2, updated_at=NOW() WHERE id = $1`, id, deleted)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient WHERE NOT is_deleted`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE NOT is_deleted ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
