package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/party"
	"github.com/clinic/clinic/pkg/domainerr"
)

// DoctorDirectory resolves doctor handles. Satisfied by *party.Service.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*party.Doctor, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	runner  TxRunner
}

func NewService(repo Repository, doctors DoctorDirectory, runner TxRunner) *Service {
	return &Service{repo: repo, doctors: doctors, runner: runner}
}

// SetAvailableTimes replaces the doctor's slot list. The whole list is
// validated before anything is written; the swap happens in one transaction
// so readers never observe a half-replaced list.
func (s *Service) SetAvailableTimes(ctx context.Context, doctorID uuid.UUID, slots []string) error {
	ve := &domainerr.ValidationError{}
	seen := make(map[string]bool, len(slots))
	for i, slot := range slots {
		field := fmt.Sprintf("slots[%d]", i)
		if !ValidSlotLabel(slot) {
			ve.Add(field, "must look like HH:MM-HH:MM with start before end")
			continue
		}
		if seen[slot] {
			ve.Add(field, "duplicate slot")
		}
		seen[slot] = true
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	d, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	return s.runner.WithTx(ctx, func(ctx context.Context) error {
		return s.repo.Replace(ctx, d.ID, slots)
	})
}

// AvailableSlots returns the doctor's slot labels in the order they were set.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	d, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, d.ID)
}
