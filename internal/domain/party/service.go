package party

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinic/clinic/pkg/domainerr"
)

type Service struct {
	doctors  DoctorRepository
	patients PatientRepository
}

func NewService(doctors DoctorRepository, patients PatientRepository) *Service {
	return &Service{doctors: doctors, patients: patients}
}

// -- Doctor --

type CreateDoctorParams struct {
	Name              string  `json:"name"`
	Specialty         string  `json:"specialty"`
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	Phone             string  `json:"phone"`
	YearsOfExperience *int    `json:"years_of_experience"`
	ClinicAddress     *string `json:"clinic_address"`
}

type UpdateDoctorParams struct {
	Name              string  `json:"name"`
	Specialty         string  `json:"specialty"`
	Phone             string  `json:"phone"`
	YearsOfExperience *int    `json:"years_of_experience"`
	ClinicAddress     *string `json:"clinic_address"`
}

func (s *Service) CreateDoctor(ctx context.Context, p CreateDoctorParams) (*Doctor, error) {
	ve := &domainerr.ValidationError{}
	validateContact(ve, p.Name, p.Email, p.Phone)
	if l := len(strings.TrimSpace(p.Specialty)); l < minSpecialtyLen || l > maxSpecialtyLen {
		ve.Add("specialty", "must be between 3 and 50 characters")
	}
	if p.YearsOfExperience != nil && (*p.YearsOfExperience < 0 || *p.YearsOfExperience > maxExperienceYrs) {
		ve.Add("years_of_experience", "must be between 0 and 60")
	}
	if p.ClinicAddress != nil && len(*p.ClinicAddress) > maxAddressLen {
		ve.Add("clinic_address", "must be at most 255 characters")
	}
	validatePassword(ve, p.Password)

	if emailPattern.MatchString(p.Email) {
		inUse, err := s.doctors.EmailInUse(ctx, p.Email, 0)
		if err != nil {
			return nil, err
		}
		if inUse {
			ve.Add("email", "already registered")
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	d := &Doctor{
		UUID:              uuid.New(),
		Name:              strings.TrimSpace(p.Name),
		Specialty:         strings.TrimSpace(p.Specialty),
		Email:             p.Email,
		PasswordHash:      string(hash),
		Phone:             p.Phone,
		YearsOfExperience: p.YearsOfExperience,
		ClinicAddress:     p.ClinicAddress,
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsDeleted {
		return nil, domainerr.NotFound("doctor", id.String())
	}
	return d, nil
}

// GetDoctorByEmail resolves the active doctor registered under the address.
func (s *Service) GetDoctorByEmail(ctx context.Context, email string) (*Doctor, error) {
	return s.doctors.GetByEmail(ctx, email)
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, p UpdateDoctorParams) (*Doctor, error) {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := &domainerr.ValidationError{}
	if l := len(strings.TrimSpace(p.Name)); l < minNameLen || l > maxNameLen {
		ve.Add("name", "must be between 3 and 100 characters")
	}
	if l := len(strings.TrimSpace(p.Specialty)); l < minSpecialtyLen || l > maxSpecialtyLen {
		ve.Add("specialty", "must be between 3 and 50 characters")
	}
	if !phonePattern.MatchString(p.Phone) {
		ve.Add("phone", "must match the pattern XXX-XXX-XXXX")
	}
	if p.YearsOfExperience != nil && (*p.YearsOfExperience < 0 || *p.YearsOfExperience > maxExperienceYrs) {
		ve.Add("years_of_experience", "must be between 0 and 60")
	}
	if p.ClinicAddress != nil && len(*p.ClinicAddress) > maxAddressLen {
		ve.Add("clinic_address", "must be at most 255 characters")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	d.Name = strings.TrimSpace(p.Name)
	d.Specialty = strings.TrimSpace(p.Specialty)
	d.Phone = p.Phone
	d.YearsOfExperience = p.YearsOfExperience
	d.ClinicAddress = p.ClinicAddress
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDoctor marks the doctor deleted. The record stays behind the flag so
// past appointments keep a valid reference.
func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return err
	}
	return s.doctors.SetDeleted(ctx, d.ID, true)
}

func (s *Service) ListDoctors(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, specialty, limit, offset)
}

// -- Patient --

type CreatePatientParams struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
}

type UpdatePatientParams struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
}

func validatePatientProfile(ve *domainerr.ValidationError, address string, dob time.Time, gender Gender) {
	if address == "" || len(address) > maxAddressLen {
		ve.Add("address", "is required and must be at most 255 characters")
	}
	if dob.IsZero() || !dob.Before(time.Now()) {
		ve.Add("date_of_birth", "must be in the past")
	}
	if !gender.Valid() {
		ve.Add("gender", "must be MALE, FEMALE or OTHER")
	}
}

func (s *Service) CreatePatient(ctx context.Context, p CreatePatientParams) (*Patient, error) {
	ve := &domainerr.ValidationError{}
	validateContact(ve, p.Name, p.Email, p.Phone)
	validatePatientProfile(ve, p.Address, p.DateOfBirth, p.Gender)
	validatePassword(ve, p.Password)

	if emailPattern.MatchString(p.Email) {
		inUse, err := s.patients.EmailInUse(ctx, p.Email, 0)
		if err != nil {
			return nil, err
		}
		if inUse {
			ve.Add("email", "already registered")
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	pt := &Patient{
		UUID:         uuid.New(),
		Name:         strings.TrimSpace(p.Name),
		Email:        p.Email,
		PasswordHash: string(hash),
		Phone:        p.Phone,
		Address:      p.Address,
		DateOfBirth:  p.DateOfBirth,
		Gender:       p.Gender,
	}
	if err := s.patients.Create(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted {
		return nil, domainerr.NotFound("patient", id.String())
	}
	return p, nil
}

func (s *Service) GetPatientByEmail(ctx context.Context, email string) (*Patient, error) {
	return s.patients.GetByEmail(ctx, email)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, p UpdatePatientParams) (*Patient, error) {
	pt, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := &domainerr.ValidationError{}
	if l := len(strings.TrimSpace(p.Name)); l < minNameLen || l > maxNameLen {
		ve.Add("name", "must be between 3 and 100 characters")
	}
	if !phonePattern.MatchString(p.Phone) {
		ve.Add("phone", "must match the pattern XXX-XXX-XXXX")
	}
	validatePatientProfile(ve, p.Address, p.DateOfBirth, p.Gender)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	pt.Name = strings.TrimSpace(p.Name)
	pt.Phone = p.Phone
	pt.Address = p.Address
	pt.DateOfBirth = p.DateOfBirth
	pt.Gender = p.Gender
	if err := s.patients.Update(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	p, err := s.GetPatient(ctx, id)
	if err != nil {
		return err
	}
	return s.patients.SetDeleted(ctx, p.ID, true)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
