package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/scheduling-api/internal/repository"
)

type availabilityRepository struct {
	BaseRepository
}

type bookingRepository struct {
	BaseRepository
}

type doctorRepository struct {
	BaseRepository
}

type clinicRepository struct {
	BaseRepository
}

type patientRepository struct {
	BaseRepository
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{NewBaseRepository(db)}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{NewBaseRepository(db)}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{NewBaseRepository(db)}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}
