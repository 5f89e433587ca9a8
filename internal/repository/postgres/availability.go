package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/scheduling-api/internal/model"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

// All availability and off-day repository methods here

// ReplaceRanges deletes every stored range for (doctor, clinic) and inserts
// the new set in a single transaction, so a failed save leaves the previous
// schedule intact.
func (r *availabilityRepository) ReplaceRanges(ctx context.Context, doctorID, clinicID uuid.UUID, ranges []*model.AvailabilityRange) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM availability_ranges
			WHERE doctor_id = $1 AND clinic_id = $2
		`, doctorID, clinicID)
		if err != nil {
			return fmt.Errorf("failed to delete prior ranges: %w", err)
		}

		query := `
			INSERT INTO availability_ranges (
				id, doctor_id, clinic_id, day_of_week,
				start_time, end_time, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		now := time.Now()
		for _, rng := range ranges {
			rng.ID = uuid.New()
			rng.DoctorID = doctorID
			rng.ClinicID = clinicID
			rng.CreatedAt = now
			rng.UpdatedAt = now

			_, err := tx.ExecContext(ctx, query,
				rng.ID,
				rng.DoctorID,
				rng.ClinicID,
				rng.DayOfWeek,
				rng.StartTime,
				rng.EndTime,
				rng.CreatedAt,
				rng.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert range: %w", err)
			}
		}
		return nil
	})
}

func (r *availabilityRepository) ListRanges(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.AvailabilityRange, error) {
	query := `
		SELECT id, doctor_id, clinic_id, day_of_week,
			   start_time, end_time, created_at, updated_at
		FROM availability_ranges
		WHERE doctor_id = $1 AND clinic_id = $2
		ORDER BY day_of_week, start_time
	`
	var ranges []*model.AvailabilityRange
	if err := r.db.SelectContext(ctx, &ranges, query, doctorID, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list availability ranges: %w", err)
	}
	return ranges, nil
}

func (r *availabilityRepository) ListRangesForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRange, error) {
	query := `
		SELECT id, doctor_id, clinic_id, day_of_week,
			   start_time, end_time, created_at, updated_at
		FROM availability_ranges
		WHERE doctor_id = $1 AND clinic_id = $2 AND day_of_week = $3
		ORDER BY start_time
	`
	var ranges []*model.AvailabilityRange
	if err := r.db.SelectContext(ctx, &ranges, query, doctorID, clinicID, dayOfWeek); err != nil {
		return nil, fmt.Errorf("failed to list availability ranges for day: %w", err)
	}
	return ranges, nil
}

// ListDoctorRanges returns the doctor's ranges across every clinic they
// belong to, joined with the clinic name for conflict reporting.
func (r *availabilityRepository) ListDoctorRanges(ctx context.Context, doctorID uuid.UUID) ([]*model.DoctorClinicRange, error) {
	query := `
		SELECT ar.id, ar.doctor_id, ar.clinic_id, ar.day_of_week,
			   ar.start_time, ar.end_time, ar.created_at, ar.updated_at,
			   c.name AS clinic_name
		FROM availability_ranges ar
		JOIN clinics c ON c.id = ar.clinic_id
		WHERE ar.doctor_id = $1
		ORDER BY ar.day_of_week, ar.start_time
	`
	var ranges []*model.DoctorClinicRange
	if err := r.db.SelectContext(ctx, &ranges, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor ranges: %w", err)
	}
	return ranges, nil
}

func (r *availabilityRepository) DeleteAllRanges(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM availability_ranges WHERE doctor_id = $1
	`, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete doctor ranges: %w", err)
	}
	return nil
}

func (r *availabilityRepository) ReplaceWeeklyOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, days []int) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM weekly_off_days
			WHERE doctor_id = $1 AND clinic_id = $2
		`, doctorID, clinicID)
		if err != nil {
			return fmt.Errorf("failed to delete prior weekly off days: %w", err)
		}

		query := `
			INSERT INTO weekly_off_days (
				id, doctor_id, clinic_id, day_of_week, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`
		now := time.Now()
		for _, day := range days {
			_, err := tx.ExecContext(ctx, query, uuid.New(), doctorID, clinicID, day, now, now)
			if err != nil {
				return fmt.Errorf("failed to insert weekly off day: %w", err)
			}
		}
		return nil
	})
}

func (r *availabilityRepository) ListWeeklyOffDays(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.WeeklyOffDay, error) {
	query := `
		SELECT id, doctor_id, clinic_id, day_of_week, created_at, updated_at
		FROM weekly_off_days
		WHERE doctor_id = $1 AND clinic_id = $2
		ORDER BY day_of_week
	`
	var days []*model.WeeklyOffDay
	if err := r.db.SelectContext(ctx, &days, query, doctorID, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list weekly off days: %w", err)
	}
	return days, nil
}

func (r *availabilityRepository) HasWeeklyOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM weekly_off_days
			WHERE doctor_id = $1 AND clinic_id = $2 AND day_of_week = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, doctorID, clinicID, dayOfWeek); err != nil {
		return false, fmt.Errorf("failed to check weekly off day: %w", err)
	}
	return exists, nil
}

// AddSpecificOffDays inserts a batch of dates. Re-adding an existing date is
// a no-op rather than an error.
func (r *availabilityRepository) AddSpecificOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, dates []time.Time, reason string) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO specific_off_days (
				id, doctor_id, clinic_id, off_date, reason, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (doctor_id, clinic_id, off_date) DO NOTHING
		`
		now := time.Now()
		for _, date := range dates {
			_, err := tx.ExecContext(ctx, query, uuid.New(), doctorID, clinicID, date, reason, now, now)
			if err != nil {
				return fmt.Errorf("failed to insert specific off day: %w", err)
			}
		}
		return nil
	})
}

func (r *availabilityRepository) DeleteSpecificOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM specific_off_days
		WHERE doctor_id = $1 AND clinic_id = $2 AND off_date = $3
	`, doctorID, clinicID, date)
	if err != nil {
		return fmt.Errorf("failed to delete specific off day: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("specific off day", nil)
	}
	return nil
}

func (r *availabilityRepository) ListSpecificOffDays(ctx context.Context, doctorID, clinicID uuid.UUID) ([]*model.SpecificOffDay, error) {
	query := `
		SELECT id, doctor_id, clinic_id, off_date, reason, created_at, updated_at
		FROM specific_off_days
		WHERE doctor_id = $1 AND clinic_id = $2
		ORDER BY off_date
	`
	var days []*model.SpecificOffDay
	if err := r.db.SelectContext(ctx, &days, query, doctorID, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list specific off days: %w", err)
	}
	return days, nil
}

func (r *availabilityRepository) HasSpecificOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM specific_off_days
			WHERE doctor_id = $1 AND clinic_id = $2 AND off_date = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, doctorID, clinicID, date); err != nil {
		return false, fmt.Errorf("failed to check specific off day: %w", err)
	}
	return exists, nil
}
