package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/scheduling-api/internal/model"
)

// All repository interfaces in one file
type (
	// AvailabilityRepository owns the weekly ranges and both off-day tables.
	// Replace* methods are atomic: readers never observe a partially
	// replaced schedule.
	AvailabilityRepository interface {
		ReplaceRanges(ctx context.Context, doctorID, clinicID uuid.UUID, ranges []*model.AvailabilityRange) error
		ListRanges(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.AvailabilityRange, error)
		ListRangesForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRange, error)
		ListDoctorRanges(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorClinicRange, error)
		DeleteAllRanges(ctx context.Context, doctorID uuid.UUID) error

		ReplaceWeeklyOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, days []int) error
		ListWeeklyOffDays(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.WeeklyOffDay, error)
		HasWeeklyOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) (bool, error)

		AddSpecificOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, dates []time.Time, reason string) error
		DeleteSpecificOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) error
		ListSpecificOffDays(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.SpecificOffDay, error)
		HasSpecificOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) (bool, error)
	}

	// BookingRepository guards booking creation: Create re-checks overlap and
	// inserts inside one transaction, returning a slot-conflict error when
	// the window is taken.
	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		UpdateStatus(ctx context.Context, booking *model.Booking) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		ListOccupyingForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayStart time.Time) ([]*model.Booking, error)
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		// UpdateSlotDuration changes the doctor's grid quantization and
		// deletes all stored availability ranges in the same transaction.
		UpdateSlotDuration(ctx context.Context, id uuid.UUID, minutes int) error
	}

	ClinicRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Clinic, error)
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	}
)
