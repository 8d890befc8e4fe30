// Package party holds the registry of the two scheduling parties, doctors
// and patients. Both carry contact data, a bcrypt credential hash that is
// never serialized, and a soft-delete flag that removes them from lookups
// without destroying the booking history that references them.
package party

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/pkg/domainerr"
)

// Gender is the patient gender enumeration.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Doctor maps to the doctor table. The numeric key stays internal; handlers
// only ever see the uuid.
type Doctor struct {
	ID                int64     `db:"id" json:"-"`
	UUID              uuid.UUID `db:"uuid" json:"id"`
	Name              string    `db:"name" json:"name"`
	Specialty         string    `db:"specialty" json:"specialty"`
	Email             string    `db:"email" json:"email"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	Phone             string    `db:"phone" json:"phone"`
	YearsOfExperience *int      `db:"years_of_experience" json:"years_of_experience,omitempty"`
	ClinicAddress     *string   `db:"clinic_address" json:"clinic_address,omitempty"`
	IsDeleted         bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Patient maps to the patient table.
type Patient struct {
	ID           int64     `db:"id" json:"-"`
	UUID         uuid.UUID `db:"uuid" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone"`
	Address      string    `db:"address" json:"address"`
	DateOfBirth  time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender       Gender    `db:"gender" json:"gender"`
	IsDeleted    bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	minPasswordLen   = 6
	maxAddressLen    = 255
	maxNotesLen      = 500
	minNameLen       = 3
	maxNameLen       = 100
	minSpecialtyLen  = 3
	maxSpecialtyLen  = 50
	maxExperienceYrs = 60
)

// validateContact collects the violations shared by both party types.
func validateContact(ve *domainerr.ValidationError, name, email, phone string) {
	if l := len(strings.TrimSpace(name)); l < minNameLen || l > maxNameLen {
		ve.Add("name", "must be between 3 and 100 characters")
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "must be a valid email address")
	}
	if !phonePattern.MatchString(phone) {
		ve.Add("phone", "must match the pattern XXX-XXX-XXXX")
	}
}

func validatePassword(ve *domainerr.ValidationError, password string) {
	if len(password) < minPasswordLen {
		ve.Add("password", "must be at least 6 characters")
	}
}
