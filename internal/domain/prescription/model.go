// Package prescription keeps prescription documents in Redis, keyed by id
// and indexed per appointment. Records are denormalized: party names are
// captured at issue time so a later soft delete of the doctor or patient
// does not blank out the document.
package prescription

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorName    string    `json:"doctor_name"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   *string   `json:"doctor_notes,omitempty"`
	RefillCount   int       `json:"refill_count"`
	PharmacyName  *string   `json:"pharmacy_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	minMedicationLen = 3
	maxMedicationLen = 100
	maxDosageLen     = 100
	maxNotesLen      = 500
	maxRefills       = 10
	maxPharmacyLen   = 100
)
