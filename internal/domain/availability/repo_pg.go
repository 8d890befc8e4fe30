package availability

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
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

func (r *repoPG) Replace(ctx context.Context, doctorID int64, slots []string) error {
	c := r.conn(ctx)
	if _, err := c.Exec(ctx,
		`DELETE FROM doctor_available_time WHERE doctor_id = $1`, doctorID); err != nil {
		return err
	}
	for i, slot := range slots {
		if _, err := c.Exec(ctx, `
			INSERT INTO doctor_available_time (doctor_id, position, slot_label)
			VALUES ($1, $2, $3)`, doctorID, i, slot); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT slot_label FROM doctor_available_time
		WHERE doctor_id = $1 ORDER BY position ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
