package model

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	Base
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	Status       string `db:"status" json:"status"`
	// SlotDuration quantizes every clinic's availability grid for this
	// doctor, in minutes. One value per doctor, not per clinic.
	SlotDuration int `db:"slot_duration" json:"slot_duration"`
}

// DoctorClinic links a doctor to a clinic they practice at.
type DoctorClinic struct {
	Base
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	ClinicID  uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	StartDate time.Time  `db:"start_date" json:"start_date"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
}

type UpdateSlotDurationRequest struct {
	// Changing the duration discards all stored availability ranges for the
	// doctor; the client has to warn before submitting.
	SlotDuration int `json:"slot_duration" binding:"required,min=5,max=120"`
}
