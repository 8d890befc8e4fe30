package party

import (
	"context"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	// EmailInUse reports whether an active doctor other than excludeID
	// already uses the address.
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, d *Doctor) error
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	List(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, p *Patient) error
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
