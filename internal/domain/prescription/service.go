package prescription

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/party"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/pkg/domainerr"
)

// AppointmentDirectory resolves the appointment a prescription attaches to.
// Satisfied by *scheduling.Service.
type AppointmentDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error)
}

// PartyDirectory resolves party names for denormalization. Satisfied by
// *party.Service.
type PartyDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*party.Doctor, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*party.Patient, error)
}

type Service struct {
	repo         Repository
	appointments AppointmentDirectory
	parties      PartyDirectory
	now          func() time.Time
}

func NewService(repo Repository, appointments AppointmentDirectory, parties PartyDirectory) *Service {
	return &Service{repo: repo, appointments: appointments, parties: parties, now: time.Now}
}

type CreateParams struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   *string   `json:"doctor_notes"`
	RefillCount   int       `json:"refill_count"`
	PharmacyName  *string   `json:"pharmacy_name"`
}

func validateContent(ve *domainerr.ValidationError, medication, dosage string, notes *string, refills int, pharmacy *string) {
	if l := len(strings.TrimSpace(medication)); l < minMedicationLen || l > maxMedicationLen {
		ve.Add("medication", "must be between 3 and 100 characters")
	}
	if l := len(strings.TrimSpace(dosage)); l == 0 || l > maxDosageLen {
		ve.Add("dosage", "is required and must be at most 100 characters")
	}
	if notes != nil && len(*notes) > maxNotesLen {
		ve.Add("doctor_notes", "must be at most 500 characters")
	}
	if refills < 0 || refills > maxRefills {
		ve.Add("refill_count", "must be between 0 and 10")
	}
	if pharmacy != nil && len(*pharmacy) > maxPharmacyLen {
		ve.Add("pharmacy_name", "must be at most 100 characters")
	}
}

// Create issues a prescription against an existing appointment. Party names
// are resolved once and stored on the document.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Prescription, error) {
	ve := &domainerr.ValidationError{}
	validateContent(ve, p.Medication, p.Dosage, p.DoctorNotes, p.RefillCount, p.PharmacyName)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	appt, err := s.appointments.Get(ctx, p.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsDeleted {
		return nil, domainerr.NotFound("appointment", p.AppointmentID.String())
	}
	d, err := s.parties.GetDoctor(ctx, appt.DoctorUUID)
	if err != nil {
		return nil, err
	}
	pt, err := s.parties.GetPatient(ctx, appt.PatientUUID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &Prescription{
		ID:            uuid.New(),
		AppointmentID: appt.UUID,
		DoctorName:    d.Name,
		PatientName:   pt.Name,
		Medication:    strings.TrimSpace(p.Medication),
		Dosage:        strings.TrimSpace(p.Dosage),
		DoctorNotes:   p.DoctorNotes,
		RefillCount:   p.RefillCount,
		PharmacyName:  p.PharmacyName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*Prescription, error) {
	if _, err := s.appointments.Get(ctx, appointmentID); err != nil {
		return nil, err
	}
	return s.repo.ListByAppointment(ctx, appointmentID)
}

type UpdateParams struct {
	Medication   string  `json:"medication"`
	Dosage       string  `json:"dosage"`
	DoctorNotes  *string `json:"doctor_notes"`
	RefillCount  int     `json:"refill_count"`
	PharmacyName *string `json:"pharmacy_name"`
}

// Update rewrites the mutable content of a prescription. The appointment
// binding and the captured names do not change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Prescription, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := &domainerr.ValidationError{}
	validateContent(ve, p.Medication, p.Dosage, p.DoctorNotes, p.RefillCount, p.PharmacyName)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	rec.Medication = strings.TrimSpace(p.Medication)
	rec.Dosage = strings.TrimSpace(p.Dosage)
	rec.DoctorNotes = p.DoctorNotes
	rec.RefillCount = p.RefillCount
	rec.PharmacyName = p.PharmacyName
	rec.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
