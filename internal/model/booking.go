package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// bookingTransitions is the one-way status state machine. Terminal states
// have no outgoing transitions.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusNoShow, BookingStatusCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0 && s.Valid()
}

// Occupies reports whether a booking in this status blocks its time window.
// Only pending and confirmed bookings occupy time; terminal states free the
// slot for rebooking.
func (s BookingStatus) Occupies() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is an appointment occupying an absolute time window for a doctor at
// a clinic. Bookings are never hard-deleted, only status-transitioned.
type Booking struct {
	Base
	DoctorID     uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	ClinicID     uuid.UUID     `db:"clinic_id" json:"clinic_id"`
	PatientID    uuid.UUID     `db:"patient_id" json:"patient_id"`
	StartTime    time.Time     `db:"start_time" json:"start_time"`
	EndTime      time.Time     `db:"end_time" json:"end_time"`
	Status       BookingStatus `db:"status" json:"status"`
	Reason       string        `db:"reason" json:"reason,omitempty"`
	Notes        string        `db:"notes" json:"notes,omitempty"`
	CancelReason *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// TimeRange is a half-open absolute interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps applies the half-open interval rule: a range ending exactly when
// another starts does not overlap it.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

type CreateBookingRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	ClinicID  uuid.UUID `json:"clinic_id" binding:"required"`
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Reason    string    `json:"reason" binding:"max=500"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status       BookingStatus `json:"status" binding:"required,bookingstatus"`
	CancelReason *string       `json:"cancel_reason"`
}

type BookingFilters struct {
	DoctorID  uuid.UUID
	ClinicID  uuid.UUID
	PatientID uuid.UUID
	Status    BookingStatus
	From      time.Time
	To        time.Time
}
