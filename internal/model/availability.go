package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRange is one contiguous working-hour window for a doctor at a
// clinic on a weekly day. Day of week is 0=Sunday through 6=Saturday,
// matching time.Weekday. Ranges are replaced wholesale per (doctor, clinic)
// save, never patched.
type AvailabilityRange struct {
	Base
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime TimeOfDay `db:"start_time" json:"start_time"`
	EndTime   TimeOfDay `db:"end_time" json:"end_time"`
}

// DoctorClinicRange is an availability range joined with the owning clinic's
// name, used by the cross-clinic conflict resolver.
type DoctorClinicRange struct {
	AvailabilityRange
	ClinicName string `db:"clinic_name" json:"clinic_name"`
}

// WeeklyOffDay marks a recurring day fully unavailable, overriding any
// availability range for that day. Unique per (doctor, clinic, day).
type WeeklyOffDay struct {
	Base
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
}

// SpecificOffDay marks one calendar date unavailable. Date is normalized to
// midnight. Unique per (doctor, clinic, date).
type SpecificOffDay struct {
	Base
	DoctorID uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ClinicID uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Date     time.Time `db:"off_date" json:"date"`
	Reason   string    `db:"reason" json:"reason,omitempty"`
}

// RangeInput is one range in a replace-all availability save.
type RangeInput struct {
	DayOfWeek int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
}

type SaveAvailabilityRequest struct {
	Ranges []RangeInput `json:"ranges" binding:"required,dive"`
}

type SaveWeeklyOffDaysRequest struct {
	Days []int `json:"days" binding:"required,dive,min=0,max=6"`
}

type AddSpecificOffDaysRequest struct {
	Dates  []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
	Reason string   `json:"reason" binding:"max=500"`
}

// DoctorSchedule is the read-back view for the availability editing UI.
type DoctorSchedule struct {
	Ranges          []*AvailabilityRange `json:"ranges"`
	WeeklyOffDays   []*WeeklyOffDay      `json:"weekly_off_days"`
	SpecificOffDays []*SpecificOffDay    `json:"specific_off_days"`
}
