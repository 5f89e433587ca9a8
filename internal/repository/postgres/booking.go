package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/scheduling-api/internal/model"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

// All booking repository methods here

const bookingColumns = `
	id, doctor_id, clinic_id, patient_id,
	start_time, end_time, status, reason, notes, cancel_reason,
	created_at, updated_at
`

// Create inserts the booking after re-checking overlap inside the same
// transaction. A per-doctor advisory lock serializes concurrent attempts so
// two conflicting requests cannot both pass the check; the loser gets a
// slot-conflict error carrying the winning booking's time.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			booking.DoctorID.String(),
		); err != nil {
			return fmt.Errorf("failed to acquire doctor lock: %w", err)
		}

		var conflict model.Booking
		err := tx.GetContext(ctx, &conflict, `
			SELECT `+bookingColumns+`
			FROM bookings
			WHERE doctor_id = $1
			AND status IN ($2, $3)
			AND start_time < $5
			AND end_time > $4
			ORDER BY start_time
			LIMIT 1
		`,
			booking.DoctorID,
			model.BookingStatusPending,
			model.BookingStatusConfirmed,
			booking.StartTime,
			booking.EndTime,
		)
		if err == nil {
			return apperrors.NewSlotConflict(conflict.StartTime, conflict.EndTime)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}

		booking.ID = uuid.New()
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookings (
				id, doctor_id, clinic_id, patient_id,
				start_time, end_time, status, reason, notes,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			booking.ID,
			booking.DoctorID,
			booking.ClinicID,
			booking.PatientID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Reason,
			booking.Notes,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *model.Booking) error {
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`,
		booking.Status,
		booking.CancelReason,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("booking", nil)
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}
	if filters.ClinicID != uuid.Nil {
		query += fmt.Sprintf(" AND clinic_id = $%d", argCount)
		args = append(args, filters.ClinicID)
		argCount++
	}
	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if !filters.From.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.From)
		argCount++
	}
	if !filters.To.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argCount)
		args = append(args, filters.To)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListOccupyingForDay returns the pending and confirmed bookings whose start
// falls within the calendar day beginning at dayStart.
func (r *bookingRepository) ListOccupyingForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayStart time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE doctor_id = $1
		AND clinic_id = $2
		AND status IN ($3, $4)
		AND start_time >= $5
		AND start_time < $6
		ORDER BY start_time ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query,
		doctorID,
		clinicID,
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for day: %w", err)
	}
	return bookings, nil
}
