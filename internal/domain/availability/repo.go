package availability

import "context"

type Repository interface {
	// Replace swaps the doctor's slot list for the given one, preserving
	// the caller's ordering.
	Replace(ctx context.Context, doctorID int64, slots []string) error
	ListByDoctor(ctx context.Context, doctorID int64) ([]string, error)
}
